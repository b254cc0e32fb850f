package banner

import (
	"breakcheck/internal/styles"

	"github.com/charmbracelet/lipgloss"
)

func GetString() string {
	renderer := lipgloss.DefaultRenderer()

	style := renderer.NewStyle().
		Foreground(styles.ColorBanner).
		Bold(true)

	ascii := `
    __                    __        __              __
   / /_  ________  ____ _/ /_______/ /_  ___  _____/ /__
  / __ \/ ___/ _ \/ __ '/ //_/ ___/ __ \/ _ \/ ___/ //_/
 / /_/ / /  /  __/ /_/ / ,< / /__/ / / /  __/ /__/ ,<
/_.___/_/   \___/\__,_/_/|_|\___/_/ /_/\___/\___/_/|_|  `

	return "\n" + style.Render(ascii) + "\n"
}
