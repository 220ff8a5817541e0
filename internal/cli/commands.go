package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jrconcha-strat/taskboard/internal/domain"
	"github.com/jrconcha-strat/taskboard/internal/seed"
)

func newMigrateCommand(connect Connector) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, connect, func(rt *Runtime) error {
				if err := rt.Migrate(cmd.Context()); err != nil {
					return emit(cmd, domain.Fail[struct{}]("migration failed", err))
				}
				return emit(cmd, domain.OK("schema is up to date", struct{}{}))
			})
		},
	}
}

func newSeedCommand(connect Connector) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Load a YAML fixture through the services",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := seed.LoadFile(args[0])
			if err != nil {
				return &ExitError{Code: ExitCommandError, Message: "load fixture", Err: err}
			}

			return withRuntime(cmd, connect, func(rt *Runtime) error {
				sum, err := seed.NewSeeder(rt.Services, rt.Log).Apply(cmd.Context(), fixture)
				if err != nil {
					res := domain.Fail[*seed.Summary](err.Error(), err)
					res.Data = sum
					return emit(cmd, res)
				}
				return emit(cmd, domain.OK("fixture applied", sum))
			})
		},
	}
}

func newTeamCommand(connect Connector) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage team membership and leadership",
	}

	var leaderID int64
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a team led by --leader",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if leaderID <= 0 {
				return &ExitError{Code: ExitCommandError, Message: "--leader is required"}
			}
			return withRuntime(cmd, connect, func(rt *Runtime) error {
				return emit(cmd, rt.Services.Leadership.CreateTeam(cmd.Context(), args[0], leaderID))
			})
		},
	}
	create.Flags().Int64Var(&leaderID, "leader", 0, "id of the user who leads the team")

	addMembers := &cobra.Command{
		Use:   "add-members <team-id> <user-id>...",
		Short: "Add users to a team (all or nothing)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, userIDs, err := teamAndUsers(args)
			if err != nil {
				return err
			}
			return withRuntime(cmd, connect, func(rt *Runtime) error {
				return emit(cmd, rt.Services.Leadership.AddMembers(cmd.Context(), teamID, userIDs))
			})
		},
	}

	removeMembers := &cobra.Command{
		Use:   "remove-members <team-id> <user-id>...",
		Short: "Remove users from a team; the leader cannot be removed",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, userIDs, err := teamAndUsers(args)
			if err != nil {
				return err
			}
			return withRuntime(cmd, connect, func(rt *Runtime) error {
				return emit(cmd, rt.Services.Leadership.RemoveMembers(cmd.Context(), teamID, userIDs))
			})
		},
	}

	var fromID, toID int64
	reassign := &cobra.Command{
		Use:   "reassign <team-id>",
		Short: "Move leadership from --from to --to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := parseID("team id", args[0])
			if err != nil {
				return err
			}
			if fromID <= 0 || toID <= 0 {
				return &ExitError{Code: ExitCommandError, Message: "--from and --to are required"}
			}
			return withRuntime(cmd, connect, func(rt *Runtime) error {
				return emit(cmd, rt.Services.Leadership.ReassignLeader(cmd.Context(), teamID, fromID, toID))
			})
		},
	}
	reassign.Flags().Int64Var(&fromID, "from", 0, "id of the current leader")
	reassign.Flags().Int64Var(&toID, "to", 0, "id of the new leader")

	members := &cobra.Command{
		Use:   "members <team-id>",
		Short: "List active members of a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := parseID("team id", args[0])
			if err != nil {
				return err
			}
			return withRuntime(cmd, connect, func(rt *Runtime) error {
				return emit(cmd, rt.Services.Leadership.GetMembers(cmd.Context(), teamID))
			})
		},
	}

	cmd.AddCommand(create, addMembers, removeMembers, reassign, members)
	return cmd
}

func teamAndUsers(args []string) (int64, []int64, error) {
	teamID, err := parseID("team id", args[0])
	if err != nil {
		return 0, nil, err
	}
	userIDs, err := parseIDs("user id", args[1:])
	if err != nil {
		return 0, nil, err
	}
	return teamID, userIDs, nil
}

func newArchiveCommand(connect Connector) *cobra.Command {
	return &cobra.Command{
		Use:       "archive <user|team> <id>",
		Short:     "Archive a user or a team",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"user", "team"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseKind(args[0])
			if err != nil {
				return &ExitError{Code: ExitCommandError, Message: "archive", Err: err}
			}
			id, err := parseID(kind.String()+" id", args[1])
			if err != nil {
				return err
			}
			return withRuntime(cmd, connect, func(rt *Runtime) error {
				return emit(cmd, rt.Services.Archive.Archive(cmd.Context(), kind, id))
			})
		},
	}
}

// newDeleteCommand - "<kind> delete <id>" для списков, задач и проектов.
func newDeleteCommand(connect Connector, kind string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   kind,
		Short: fmt.Sprintf("Operations on %ss", kind),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: fmt.Sprintf("Delete a %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(kind+" id", args[0])
			if err != nil {
				return err
			}
			return withRuntime(cmd, connect, func(rt *Runtime) error {
				ctx := cmd.Context()
				switch kind {
				case "list":
					return emit(cmd, rt.Services.Lists.Delete(ctx, id))
				case "task":
					return emit(cmd, rt.Services.Tasks.Delete(ctx, id))
				default:
					return emit(cmd, rt.Services.Projects.Delete(ctx, id))
				}
			})
		},
	})
	return cmd
}

func newCommentCommand(connect Connector) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Read comment threads",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "thread <comment-id>",
		Short: "Print a comment and all of its replies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("comment id", args[0])
			if err != nil {
				return err
			}
			return withRuntime(cmd, connect, func(rt *Runtime) error {
				return emit(cmd, rt.Services.Threads.Thread(cmd.Context(), id))
			})
		},
	})
	return cmd
}

func newUserCommand(connect Connector) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Look up users",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "find <email>",
		Short: "Find an active user by email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, connect, func(rt *Runtime) error {
				return emit(cmd, rt.Services.Accounts.GetByEmail(cmd.Context(), args[0]))
			})
		},
	})
	return cmd
}
