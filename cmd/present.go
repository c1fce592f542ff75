package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/slideai/internal/script"
)

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3498db"))
	counterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6e7781"))
	bodyStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#e2e4e8")).
			Padding(0, 1)
)

const (
	actionNext = "Next Slide"
	actionPrev = "Previous Slide"
	actionQuit = "Quit"
)

var presentCmd = &cobra.Command{
	Use:   "present <script-file>",
	Short: "Step through a presentation script in the terminal",
	Long:  `Reads a generated script and shows one slide's narration at a time, with Next and Previous controls.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPresent,
}

func init() {
	presentCmd.Flags().Int("width", 80, "width of the narration box")
	rootCmd.AddCommand(presentCmd)
}

func runPresent(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	parsed, err := script.Parse(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	width, _ := cmd.Flags().GetInt("width")

	nav := script.NewNavigator(parsed)
	for {
		fmt.Println(renderBlock(parsed, nav, width))

		prompt := promptui.Select{
			Label:    "Navigate",
			Items:    navActions(nav),
			HideHelp: true,
		}
		_, action, err := prompt.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("navigation prompt: %w", err)
		}

		switch action {
		case actionNext:
			nav.Next()
		case actionPrev:
			nav.Prev()
		default:
			return nil
		}
	}
}

// navActions lists the moves available from the current block.
func navActions(nav *script.Navigator) []string {
	var actions []string
	if nav.HasNext() {
		actions = append(actions, actionNext)
	}
	if nav.HasPrev() {
		actions = append(actions, actionPrev)
	}
	return append(actions, actionQuit)
}

// renderBlock formats the navigator's current block for the terminal.
func renderBlock(parsed *script.Script, nav *script.Navigator, width int) string {
	i := nav.Index()
	block := parsed.Blocks[i]

	heading := lipgloss.JoinHorizontal(lipgloss.Bottom,
		headingStyle.Render(block.Heading(i)),
		counterStyle.Render(fmt.Sprintf("  %d/%d", i+1, parsed.Len())),
	)
	body := bodyStyle.Width(width).Render(strings.TrimSpace(block.Body))

	return lipgloss.JoinVertical(lipgloss.Left, "", heading, body)
}
