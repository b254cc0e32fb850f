package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"breakcheck/internal/banner"
	"breakcheck/internal/cli"
	"breakcheck/internal/dummy"
	"breakcheck/internal/runner"
	"breakcheck/internal/storage"
	"breakcheck/internal/styles"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "breakcheck [urls...]",
	Short: "Breakcheck - concurrent break testing for batches of URLs",
	Long: `
Breakcheck answers one question for a whole batch of URLs at once: does
this endpoint survive N concurrent users for T seconds?

It launches one headless locust process per unique URL, streams each
process's output with a per-URL tag, and writes one JSON report per URL
under <out-dir>/break_check/.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := runner.Config{
			URLs:       args,
			Users:      viper.GetInt("users"),
			SpawnRate:  viper.GetInt("spawn-rate"),
			RunTime:    viper.GetString("run-time"),
			OutDir:     viper.GetString("out-dir"),
			LocustBin:  viper.GetString("locust-bin"),
			LocustFile: viper.GetString("locustfile"),
		}
		cli.Start(cfg)
	},
}

func Execute() {
	// Custom Help with Banner
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Println(banner.GetString())
		cmd.Usage()
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(dummyCmd)
	rootCmd.AddCommand(historyCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.breakcheck.yaml)")

	rootCmd.Flags().IntP("users", "u", runner.DefaultUsers, "Concurrent users per URL")
	rootCmd.Flags().IntP("spawn-rate", "r", runner.DefaultSpawnRate, "Users spawned per second during ramp-up")
	rootCmd.Flags().StringP("run-time", "t", runner.DefaultRunTime, "Test duration (seconds, or e.g. 90s/2m)")
	rootCmd.Flags().StringP("out-dir", "o", runner.DefaultOutDir, "Base directory for reports")
	rootCmd.Flags().String("locust-bin", runner.DefaultLocustBin, "locust executable to invoke")
	rootCmd.Flags().String("locustfile", "", "Custom locustfile (default: embedded single-endpoint file)")

	viper.BindPFlag("users", rootCmd.Flags().Lookup("users"))
	viper.BindPFlag("spawn-rate", rootCmd.Flags().Lookup("spawn-rate"))
	viper.BindPFlag("run-time", rootCmd.Flags().Lookup("run-time"))
	viper.BindPFlag("out-dir", rootCmd.Flags().Lookup("out-dir"))
	viper.BindPFlag("locust-bin", rootCmd.Flags().Lookup("locust-bin"))
	viper.BindPFlag("locustfile", rootCmd.Flags().Lookup("locustfile"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".breakcheck")
		}
	}
	viper.SetEnvPrefix("breakcheck")
	viper.AutomaticEnv()
	viper.ReadInConfig()
}

// --- Dummy Subcommand ---
var dummyCmd = &cobra.Command{
	Use:   "dummy",
	Short: "Run internal dummy target server",
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		dummy.Start(dummy.ServerConfig{Port: port})
		select {}
	},
}

// --- History Subcommand ---
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded break-test runs",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := storage.OpenDefault()
		if err != nil {
			fmt.Printf("Cannot open history store: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		recs := store.List()
		if len(recs) == 0 {
			fmt.Println("No recorded runs.")
			return
		}
		for _, rec := range recs {
			status := styles.Success.Render("ok    ")
			if !rec.OK {
				status = styles.Error.Render("failed")
			}
			fmt.Printf("%s  %s  %s  u=%d r=%d t=%s  %s\n",
				rec.Timestamp.Format("2006-01-02 15:04:05"),
				status,
				rec.TargetURL,
				rec.Users, rec.SpawnRate, rec.RunTime,
				styles.Subtle.Render(rec.ReportPath),
			)
		}
	},
}

func init() {
	dummyCmd.Flags().IntP("port", "p", 8080, "Port to run dummy server on")
}
