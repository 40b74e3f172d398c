package main

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ducktodo/internal/app"
	"ducktodo/pkg/client"
	"ducktodo/pkg/model"

	"github.com/urfave/cli/v2"
)

func healthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "check that the gateway is up",
		Action: withApp(func(c *cli.Context, a *app.App) error {
			health, err := a.API.Base.Health(c.Context)
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, health)
		}),
	}
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in with a user name or email and store the token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"u"}},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, EnvVars: []string{"DUCKTODO_PASSWORD"}},
		},
		Action: withApp(func(c *cli.Context, a *app.App) error {
			result, err := a.API.Base.Login(c.Context, model.LoginRequest{
				UserName:     c.String("name"),
				UserEmail:    c.String("email"),
				UserPassword: c.String("password"),
			})
			if err != nil {
				return err
			}
			if result.User != nil {
				fmt.Fprintf(c.App.Writer, "Logged in as %s\n", result.User.UserName)
				return nil
			}
			fmt.Fprintln(c.App.Writer, "Logged in")
			return nil
		}),
	}
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create an account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "phone", Required: true},
			&cli.StringFlag{Name: "password", EnvVars: []string{"DUCKTODO_PASSWORD"}},
			&cli.IntFlag{Name: "sex", Usage: "0 female, 1 male", Value: 1},
		},
		Action: withApp(func(c *cli.Context, a *app.App) error {
			sex := c.Int("sex")
			result, err := a.API.Base.Register(c.Context, model.RegisterRequest{
				UserName:     c.String("name"),
				UserEmail:    c.String("email"),
				UserPhone:    c.String("phone"),
				UserPassword: c.String("password"),
				UserSex:      &sex,
			})
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, result.User)
		}),
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "end the session and forget the stored token",
		Action: withApp(func(c *cli.Context, a *app.App) error {
			if err := a.API.Base.Logout(c.Context); err != nil {
				a.Log.Warn("Logout request failed, local token cleared anyway", "error", err)
			}
			fmt.Fprintln(c.App.Writer, "Logged out")
			return nil
		}),
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the signed-in user",
		Action: withApp(func(c *cli.Context, a *app.App) error {
			me, err := a.API.Users.GetMe(c.Context)
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, me)
		}),
	}
}

func avatarCommand() *cli.Command {
	return &cli.Command{
		Name:      "avatar",
		Usage:     "upload a new avatar image",
		ArgsUsage: "FILE",
		Action: withApp(func(c *cli.Context, a *app.App) error {
			file, closeFile, err := openUpload(c.Args().First())
			if err != nil {
				return err
			}
			defer closeFile()

			me, err := a.API.Users.UpdateAvatar(c.Context, file)
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, me)
		}),
	}
}

func tasksCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "list and manage tasks",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "page through your tasks, or one group's tasks with --group",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "group", Aliases: []string{"g"}},
					&cli.IntFlag{Name: "page", Value: 1},
					&cli.IntFlag{Name: "size", Value: 10},
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "status"},
					&cli.StringFlag{Name: "priority"},
					&cli.StringFlag{Name: "sort", Usage: "byPriority or a numeric sort mode"},
				},
				Action: withApp(func(c *cli.Context, a *app.App) error {
					q := model.TaskQuery{
						Page:         c.Int("page"),
						Size:         c.Int("size"),
						TaskName:     c.String("name"),
						TaskStatus:   c.String("status"),
						TaskPriority: c.String("priority"),
						SortByMode:   c.String("sort"),
					}
					var (
						page *model.Page[model.TaskSummary]
						err  error
					)
					if group := c.String("group"); group != "" {
						page, err = a.API.Tasks.PageTasksByGroup(c.Context, group, q)
					} else {
						page, err = a.API.Tasks.PageMyTasks(c.Context, q)
					}
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, page)
				}),
			},
			{
				Name:      "get",
				Usage:     "show a task with its children, helpers and files",
				ArgsUsage: "TASK_ID",
				Action: withApp(func(c *cli.Context, a *app.App) error {
					task, err := a.API.Tasks.GetTaskDetail(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, task)
				}),
			},
			{
				Name:  "create",
				Usage: "create a task in a group",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "group", Aliases: []string{"g"}, Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "due", Required: true, Usage: "YYYY-MM-DD"},
					&cli.StringFlag{Name: "start", Usage: "YYYY-MM-DD"},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "priority", Usage: "0 (urgent) to 4 (lowest)"},
					&cli.StringSliceFlag{Name: "helper", Usage: "user id of a helper, repeatable"},
				},
				Action: withApp(func(c *cli.Context, a *app.App) error {
					req := model.CreateTaskRequest{
						TaskGroupID:      c.String("group"),
						TaskName:         c.String("name"),
						TaskDescription:  c.String("description"),
						StartTime:        c.String("start"),
						DueTime:          c.String("due"),
						HelperUserIDList: c.StringSlice("helper"),
					}
					if p := c.String("priority"); p != "" {
						n, err := strconv.Atoi(p)
						if err != nil {
							return fmt.Errorf("priority must be a number, got %q", p)
						}
						req.TaskPriority = &n
					}
					task, err := a.API.Tasks.CreateTask(c.Context, req)
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, task)
				}),
			},
			{
				Name:      "delete",
				Usage:     "delete a task",
				ArgsUsage: "TASK_ID",
				Action: withApp(func(c *cli.Context, a *app.App) error {
					if err := a.API.Tasks.DeleteTask(c.Context, c.Args().First()); err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, "Deleted")
					return nil
				}),
			},
			{
				Name:  "schedule",
				Usage: "list your tasks due in a month",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "year", Required: true},
					&cli.IntFlag{Name: "month", Required: true},
				},
				Action: withApp(func(c *cli.Context, a *app.App) error {
					tasks, err := a.API.Tasks.MySchedule(c.Context, model.ScheduleQuery{
						Year:  c.Int("year"),
						Month: c.Int("month"),
					})
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, tasks)
				}),
			},
		},
	}
}

func groupsCommand() *cli.Command {
	return &cli.Command{
		Name:  "groups",
		Usage: "list and manage task groups",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list your task groups",
				Action: withApp(func(c *cli.Context, a *app.App) error {
					groups, err := a.API.TaskGroups.ListMyTaskGroups(c.Context)
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, groups)
				}),
			},
			{
				Name:  "create",
				Usage: "create a task group",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "color", Usage: "#xxxxxx"},
				},
				Action: withApp(func(c *cli.Context, a *app.App) error {
					group, err := a.API.TaskGroups.CreateTaskGroup(c.Context, model.CreateTaskGroupRequest{
						GroupName:        c.String("name"),
						GroupDescription: c.String("description"),
						GroupColor:       c.String("color"),
					})
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, group)
				}),
			},
		},
	}
}

func teamsCommand() *cli.Command {
	return &cli.Command{
		Name:  "teams",
		Usage: "list and manage teams",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list the teams you belong to",
				Action: withApp(func(c *cli.Context, a *app.App) error {
					teams, err := a.API.Teams.ListMyTeams(c.Context)
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, teams)
				}),
			},
			{
				Name:  "create",
				Usage: "create a team and invite members",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "description"},
					&cli.StringSliceFlag{Name: "member", Usage: "USER_ID:ROLE where ROLE is 1 (manager) or 2 (member), repeatable"},
				},
				Action: withApp(func(c *cli.Context, a *app.App) error {
					members, err := parseMembers(c.StringSlice("member"))
					if err != nil {
						return err
					}
					team, err := a.API.Teams.CreateTeam(c.Context, model.CreateTeamRequest{
						TeamName:          c.String("name"),
						TeamDescription:   c.String("description"),
						InvitedMemberList: members,
					})
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, team)
				}),
			},
		},
	}
}

func invitesCommand() *cli.Command {
	answer := func(accept bool) cli.ActionFunc {
		return withApp(func(c *cli.Context, a *app.App) error {
			teamID := c.Args().First()
			var err error
			if accept {
				err = a.API.Teams.AcceptInvite(c.Context, teamID)
			} else {
				err = a.API.Teams.RejectInvite(c.Context, teamID)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "Done")
			return nil
		})
	}

	return &cli.Command{
		Name:  "invites",
		Usage: "review team invitations",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list pending invitations",
				Action: withApp(func(c *cli.Context, a *app.App) error {
					page, err := a.API.Teams.MyInvitePage(c.Context, model.InviteQuery{})
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, page)
				}),
			},
			{Name: "accept", ArgsUsage: "TEAM_ID", Action: answer(true)},
			{Name: "reject", ArgsUsage: "TEAM_ID", Action: answer(false)},
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "show personal statistics",
		Subcommands: []*cli.Command{
			{
				Name:      "overview",
				Usage:     "show one overview counter",
				ArgsUsage: "joined|in_progress|completed/week|completed/month|completed/total|overdue",
				Action: withApp(func(c *cli.Context, a *app.App) error {
					raw, err := a.API.Stats.MyOverview(c.Context, model.Overview(c.Args().First()))
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, raw)
				}),
			},
			{
				Name:  "trend",
				Usage: "show the task trend for a range or a from/to window",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "range", Value: "7d"},
					&cli.StringFlag{Name: "from"},
					&cli.StringFlag{Name: "to"},
				},
				Action: withApp(func(c *cli.Context, a *app.App) error {
					raw, err := a.API.Stats.MyTaskTrend(c.Context, model.DateRange{
						Range: c.String("range"),
						From:  c.String("from"),
						To:    c.String("to"),
					})
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, raw)
				}),
			},
		},
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "daily report helpers",
		Subcommands: []*cli.Command{
			{
				Name:  "today",
				Usage: "list the tasks you completed on a day",
				Flags: []cli.Flag{&cli.StringFlag{Name: "date", Usage: "YYYY-MM-DD, defaults to today"}},
				Action: withApp(func(c *cli.Context, a *app.App) error {
					tasks, err := a.API.Reports.TodayCompletedTasks(c.Context, c.String("date"))
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, tasks)
				}),
			},
			{
				Name:  "generate",
				Usage: "generate a daily report from today's completed tasks",
				Flags: []cli.Flag{&cli.StringFlag{Name: "llm-config", Required: true}},
				Action: withApp(func(c *cli.Context, a *app.App) error {
					tasks, err := a.API.Reports.TodayCompletedTasks(c.Context, "")
					if err != nil {
						return err
					}
					report, err := a.API.Reports.GenerateDailyReport(c.Context, model.GenerateReportRequest{
						LLMConfigID:         c.String("llm-config"),
						TodayFinishTaskList: tasks,
					})
					if err != nil {
						return err
					}
					return printJSON(c.App.Writer, report)
				}),
			},
		},
	}
}

func downloadCommand() *cli.Command {
	return &cli.Command{
		Name:      "download",
		Usage:     "download a file by its gateway path",
		ArgsUsage: "PATH [FILENAME]",
		Action: withApp(func(c *cli.Context, a *app.App) error {
			path := c.Args().Get(0)
			if path == "" {
				return errors.New("a path is required")
			}
			saved, err := a.Client.Download(c.Context, path, nil, c.Args().Get(1))
			if err != nil {
				return err
			}
			if !saved {
				return errors.New("nothing was saved")
			}
			fmt.Fprintf(c.App.Writer, "Saved to %s\n", a.Config.DownloadDir)
			return nil
		}),
	}
}

// parseMembers reads USER_ID:ROLE pairs.
func parseMembers(values []string) ([]model.InvitedMember, error) {
	members := make([]model.InvitedMember, 0, len(values))
	for _, v := range values {
		id, role, ok := strings.Cut(v, ":")
		if !ok {
			return nil, fmt.Errorf("member %q must look like USER_ID:ROLE", v)
		}
		n, err := strconv.Atoi(strings.TrimSpace(role))
		if err != nil {
			return nil, fmt.Errorf("member %q has a non-numeric role", v)
		}
		members = append(members, model.InvitedMember{UserID: id, MemberRole: &n})
	}
	return members, nil
}

func openUpload(path string) (client.File, func(), error) {
	if path == "" {
		return client.File{}, nil, errors.New("a file is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return client.File{}, nil, err
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return client.File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Reader:      f,
	}, func() { _ = f.Close() }, nil
}
