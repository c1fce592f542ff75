package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/slideai/internal/progress"
	"github.com/ziadkadry99/slideai/internal/script"
	"github.com/ziadkadry99/slideai/internal/session"
	"github.com/ziadkadry99/slideai/internal/slideshow"
	"github.com/ziadkadry99/slideai/internal/upload"
)

const (
	slideshowFile = "slideshow.html"
	scriptFile    = "script.md"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate a presentation from the command line",
	Long: `Generates a slide deck for the topic and writes presentation.html (raw slide
markup) and slideshow.html (a self-contained viewer). With --script a
narration is generated as well and written to script.md.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringSliceP("file", "f", nil, "supplementary text file to incorporate (repeatable)")
	generateCmd.Flags().Bool("script", false, "also generate the presentation script")
	generateCmd.Flags().String("out", "", "output directory (overrides config)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files, _ := cmd.Flags().GetStringSlice("file")
	withScript, _ := cmd.Flags().GetBool("script")
	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	req := session.Request{Topic: strings.Join(args, " ")}
	if len(files) > 0 {
		read, err := upload.ReadFiles(files, uploadFilter(cfg))
		if err != nil {
			return fmt.Errorf("reading supplementary files: %w", err)
		}
		if req.Supplementary, err = upload.Combine(read); err != nil {
			return fmt.Errorf("reading supplementary files: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Incorporating %d files (%d bytes)\n", len(read), len(req.Supplementary))
		}
	}

	gen, closeDB, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	steps := []progress.Step{progress.StepSlides}
	if withScript {
		steps = append(steps, progress.StepScript)
	}
	reporter := progress.NewReporter()
	reporter.Start(steps)

	count, parsed, err := runGeneration(ctx, gen, reporter, req, outDir, withScript)
	reporter.Finish()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(session.MsgSlidesReady)
	fmt.Printf("  Slides:    %d\n", count)
	if withScript {
		if parsed != nil {
			fmt.Printf("  Script:    %d blocks\n", parsed.Len())
			if parsed.Len() != count {
				fmt.Fprintf(os.Stderr, "Warning: deck has %d slides but the script has %d blocks\n", count, parsed.Len())
			}
		} else {
			fmt.Fprintf(os.Stderr, "Warning: %s; raw script written as-is\n", session.MsgScriptUnusable)
		}
	}
	fmt.Printf("  Duration:  %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("  Output:    %s\n", outDir)

	return nil
}

// writeSlides writes the raw markup and the wrapped slideshow.
func writeSlides(dir, slides string) error {
	if err := os.WriteFile(filepath.Join(dir, slideshow.DownloadName), []byte(slides), 0o644); err != nil {
		return fmt.Errorf("writing slides: %w", err)
	}
	page, err := slideshow.Render(slides, 1)
	if err != nil {
		return fmt.Errorf("rendering slideshow: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, slideshowFile), page, 0o644); err != nil {
		return fmt.Errorf("writing slideshow: %w", err)
	}
	return nil
}

// runGeneration performs the model calls of one generate run and writes
// their output to outDir. The script is written even when it does not parse.
func runGeneration(ctx context.Context, gen *session.Generator, reporter progress.Reporter, req session.Request, outDir string, withScript bool) (int, *script.Script, error) {
	runID := uuid.NewString()

	reporter.Begin(progress.StepSlides)
	slides, err := gen.Slides(ctx, runID, req)
	if err != nil {
		reporter.Fail(progress.StepSlides, err)
		return 0, nil, fmt.Errorf("%s %w", session.MsgSlidesFailed, err)
	}
	count := slideshow.CountSlides(slides)
	if err := writeSlides(outDir, slides); err != nil {
		reporter.Fail(progress.StepSlides, err)
		return 0, nil, err
	}
	reporter.Done(progress.StepSlides, fmt.Sprintf("%d slides", count))

	if !withScript {
		return count, nil, nil
	}

	reporter.Begin(progress.StepScript)
	raw, err := gen.Script(ctx, runID, req, slides)
	if err != nil {
		reporter.Fail(progress.StepScript, err)
		return count, nil, fmt.Errorf("%s %w", session.MsgScriptFailed, err)
	}
	parsed, err := script.Parse(raw)
	if err != nil && !errors.Is(err, script.ErrUnparseable) {
		reporter.Fail(progress.StepScript, err)
		return count, nil, err
	}
	if err := os.WriteFile(filepath.Join(outDir, scriptFile), []byte(formatScript(raw, parsed)), 0o644); err != nil {
		reporter.Fail(progress.StepScript, err)
		return count, nil, fmt.Errorf("writing script: %w", err)
	}
	reporter.Done(progress.StepScript, fmt.Sprintf("%d blocks", parsed.Len()))
	return count, parsed, nil
}

// formatScript rewrites a parsed script with one normalized block per
// slide, keeping the bracket headers so that present and the web UI can
// load the file again. An unparsed script is written unchanged.
func formatScript(raw string, parsed *script.Script) string {
	if parsed == nil {
		return raw
	}
	var b strings.Builder
	for _, block := range parsed.Blocks {
		if block.Header == "" {
			fmt.Fprintf(&b, "%s\n\n", block.Body)
			continue
		}
		fmt.Fprintf(&b, "%s %s]\n%s\n\n", script.Delimiter, block.Header, block.Body)
	}
	return b.String()
}
