package cli

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jrconcha-strat/taskboard/internal/service"
)

// Runtime - зависимости команд после подключения к базе.
type Runtime struct {
	Services *service.Services
	Migrate  func(ctx context.Context) error
	Log      logrus.FieldLogger
}

// Connector открывает подключение и возвращает Runtime вместе с функцией закрытия.
type Connector func(ctx context.Context) (*Runtime, func(), error)

func NewRootCommand(connect Connector) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "app",
		Short:         "Taskboard data layer",
		Long:          "Command line access to the taskboard data layer: migrations, fixtures, team membership, archival and deletions.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newMigrateCommand(connect))
	cmd.AddCommand(newSeedCommand(connect))
	cmd.AddCommand(newTeamCommand(connect))
	cmd.AddCommand(newArchiveCommand(connect))
	cmd.AddCommand(newDeleteCommand(connect, "list"))
	cmd.AddCommand(newDeleteCommand(connect, "task"))
	cmd.AddCommand(newDeleteCommand(connect, "project"))
	cmd.AddCommand(newCommentCommand(connect))
	cmd.AddCommand(newUserCommand(connect))

	return cmd
}

// withRuntime подключается к базе, выполняет run и закрывает подключение.
func withRuntime(cmd *cobra.Command, connect Connector, run func(rt *Runtime) error) error {
	rt, closeFn, err := connect(cmd.Context())
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "connect", Err: err}
	}
	defer closeFn()

	return run(rt)
}
