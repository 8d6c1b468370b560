// Package cli implements the get_transcript command: one video ID in, one JSON value out.
//
// Every outcome, including a missing argument, a provider failure or a panic, is
// reported on stdout as {"error": "..."}; the process exit code is always 0.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/spf13/cobra"
)

// MsgNoVideoID is printed when the command is invoked without a video ID.
const MsgNoVideoID = "No video ID provided"

// Provider looks up the transcript of one video. A nil or empty languages slice
// selects the provider's default language behavior.
type Provider interface {
	Fetch(ctx context.Context, videoID string, languages []string) ([]engine.CaptionEntry, error)
}

// NewRootCommand builds the get_transcript command. Flag parsing is disabled:
// every argument is positional, since video IDs may begin with "-".
func NewRootCommand(p Provider) *cobra.Command {
	return &cobra.Command{
		Use:                "get_transcript <video_id> [<language_code>]",
		Short:              "Print the transcript of a YouTube video as a single JSON value",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(run(cmd.Context(), p, args))
			return err
		},
	}
}

// Main runs the command with args (program name excluded) and returns the exit code,
// which is always 0. Exactly one JSON line is written to stdout.
func Main(ctx context.Context, args []string, stdout, stderr io.Writer, p Provider) int {
	if args == nil {
		// cobra falls back to os.Args when SetArgs gets nil.
		args = []string{}
	}

	var out bytes.Buffer
	var err error
	if len(args) > 0 && isCompletionRequest(args[0]) {
		// cobra would answer these itself; here they are just (invalid) video IDs.
		out.Write(run(ctx, p, args))
	} else {
		cmd := NewRootCommand(p)
		cmd.SetArgs(args)
		cmd.SetOut(&out)
		cmd.SetErr(stderr)
		err = execute(ctx, cmd)
	}

	if err == nil && !json.Valid(bytes.TrimSpace(out.Bytes())) {
		err = fmt.Errorf("command produced no JSON output")
	}
	if err != nil {
		slog.Debug("command failed", slog.Any("error", err))
		out.Reset()
		out.Write(errorLine(err.Error()))
	}

	if _, werr := stdout.Write(out.Bytes()); werr != nil {
		slog.Warn("write stdout", slog.Any("error", werr))
	}
	return 0
}

func isCompletionRequest(arg string) bool {
	return arg == cobra.ShellCompRequestCmd || arg == cobra.ShellCompNoDescRequestCmd
}

func execute(ctx context.Context, cmd *cobra.Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	return cmd.ExecuteContext(ctx)
}

// run produces the output line for one invocation.
func run(ctx context.Context, p Provider, args []string) []byte {
	if len(args) < 1 {
		return errorLine(MsgNoVideoID)
	}
	videoID := args[0]

	var languages []string
	if len(args) > 1 {
		languages = []string{args[1]}
	}
	if len(args) > 2 {
		slog.Debug("ignoring extra arguments", slog.Int("count", len(args)-2))
	}

	entries, err := fetch(ctx, p, videoID, languages)
	if err != nil {
		slog.Debug("transcript fetch failed", slog.String("id", videoID), slog.Any("error", err))
		return errorLine(err.Error())
	}
	if entries == nil {
		entries = []engine.CaptionEntry{}
	}

	line, err := engine.EncodeLine(entries)
	if err != nil {
		return errorLine(fmt.Sprintf("encode transcript: %v", err))
	}
	return line
}

// fetch calls the provider, turning a panic into an error.
func fetch(ctx context.Context, p Provider, videoID string, languages []string) (entries []engine.CaptionEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			entries, err = nil, fmt.Errorf("transcript provider panicked: %v", r)
		}
	}()
	return p.Fetch(ctx, videoID, languages)
}

func errorLine(msg string) []byte {
	line, _ := engine.EncodeLine(engine.ErrorOutput{Error: msg})
	return line
}
