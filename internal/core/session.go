package core

import (
	"context"
	"errors"
	"io"

	"github.com/robottwo/hintline/pkg/hintline"
	"github.com/robottwo/hintline/pkg/terminal"
	"go.uber.org/zap"
)

// LineHandler is called with every committed line.
type LineHandler func(ctx context.Context, line string) error

type SessionOptions struct {
	ValidationPattern string
	HintColor         hintline.Color
}

// RunInteractiveSession prompts for lines until the user ends the input, the
// context is canceled or handle fails. Ending the input is not an error.
func RunInteractiveSession(
	ctx context.Context,
	prompter UserPrompter,
	handle LineHandler,
	options SessionOptions,
	logger *zap.Logger,
) error {
	lines := 0
	for {
		if err := ctx.Err(); err != nil {
			logger.Debug("session canceled", zap.Int("lines", lines))
			return nil
		}

		line, err := prompter.Prompt(options.ValidationPattern, options.HintColor)
		if err != nil {
			if endOfInput(err) {
				logger.Info("session ended", zap.Int("lines", lines), zap.NamedError("reason", err))
				return nil
			}
			logger.Error("failed to read line", zap.Error(err))
			return err
		}

		lines++
		if err := handle(ctx, line); err != nil {
			return err
		}
	}
}

func endOfInput(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, terminal.ErrInterrupted) ||
		errors.Is(err, terminal.ErrClosed)
}
