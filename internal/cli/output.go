package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

const (
	ExitSuccess      = 0
	ExitFailure      = 1 // операция вернула неуспешный Result
	ExitCommandError = 2 // неверные аргументы, нет подключения к БД
)

// ExitError несет код выхода процесса.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// GetExitCode возвращает код выхода для ошибки команды.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// emit печатает Result как JSON. Неуспешный результат превращается в ExitFailure.
func emit[T any](cmd *cobra.Command, res domain.Result[T]) error {
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "encode result", Err: err}
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if !res.Success {
		return &ExitError{Code: ExitFailure, Message: res.Message, Err: res.Err()}
	}
	return nil
}

func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &ExitError{Code: ExitCommandError, Message: fmt.Sprintf("invalid %s %q", name, raw)}
	}
	return id, nil
}

func parseIDs(name string, raw []string) ([]int64, error) {
	ids := make([]int64, 0, len(raw))
	for _, r := range raw {
		id, err := parseID(name, r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
