package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/penwyp/go-campus-client/internal/core/api"
	"github.com/penwyp/go-campus-client/internal/presentation/formatter"
	"github.com/penwyp/go-campus-client/internal/util"
	"github.com/spf13/cobra"
)

// operation binds one CLI subcommand to one client call.
type operation struct {
	use      string
	short    string
	requires []string
	call     func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response
}

func (ids identifierFlags) identity() api.Identity {
	return api.Identity{CampusCode: ids.campus, RollNumber: ids.roll, Authen: ids.authen}
}

// value returns the flag value backing an identifier flag name.
func (ids identifierFlags) value(flag string) string {
	switch flag {
	case "campus":
		return ids.campus
	case "roll":
		return ids.roll
	case "semester":
		return ids.semester
	case "week":
		return ids.week
	case "year":
		return ids.year
	case "date":
		return ids.date
	case "type":
		return ids.newsType
	case "username":
		return ids.username
	case "rate-id":
		return ids.rateID
	case "rate-value":
		return ids.rateValue
	case "rate-comment":
		return ids.rateComment
	}
	return ""
}

var rollFlags = []string{"campus", "roll"}

func withSemester(flags ...string) []string {
	return append(append([]string{}, flags...), "semester")
}

var operations = []operation{
	{
		use: "student", short: "Student profile", requires: rollFlags,
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetStudentByID(ctx, ids.identity())
		},
	},
	{
		use: "student-rate", short: "Ratings the student has submitted", requires: rollFlags,
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetStudentRate(ctx, ids.identity())
		},
	},
	{
		use: "add-rate", short: "Submit a rating (POST)", requires: []string{"campus", "rate-id", "rate-value"},
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.AddRate(ctx, ids.campus, ids.authen, api.Rating{
				ID:      ids.rateID,
				Value:   ids.rateValue,
				Comment: ids.rateComment,
			})
		},
	},
	{
		use: "balance", short: "Account balance", requires: rollFlags,
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetBalance(ctx, ids.identity())
		},
	},
	{
		use: "fee", short: "Tuition fees", requires: rollFlags,
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetFeeByRoll(ctx, ids.identity())
		},
	},
	{
		use: "applications", short: "Submitted applications", requires: rollFlags,
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetApplication(ctx, ids.identity())
		},
	},
	{
		use: "image", short: "Profile image", requires: rollFlags,
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.RetrieveImage(ctx, ids.identity())
		},
	},
	{
		use: "points", short: "Extracurricular points for a semester", requires: withSemester(rollFlags...),
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetExtracurricularPoints(ctx, ids.identity(), ids.semester)
		},
	},
	{
		use: "activities", short: "Timetable for a semester", requires: withSemester(rollFlags...),
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetActivityStudent(ctx, ids.identity(), ids.semester)
		},
	},
	{
		use: "activities-week", short: "Timetable for one week",
		requires: withSemester("campus", "roll", "week", "year"),
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetActivityStudentByWeek(ctx, ids.identity(), ids.week, ids.semester, ids.year)
		},
	},
	{
		use: "notifications", short: "Student notifications", requires: rollFlags,
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetNotificationByRoll(ctx, ids.identity())
		},
	},
	{
		use: "campuses", short: "Active campuses",
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetAllActiveCampus(ctx)
		},
	},
	{
		use: "version", short: "Backend app version",
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetVersion(ctx)
		},
	},
	{
		use: "campus-info", short: "Campus information for a student", requires: rollFlags,
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetCampusInfo(ctx, ids.identity())
		},
	},
	{
		use: "feedback-open", short: "Whether feedback is open", requires: rollFlags,
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.CheckOpenFeedback(ctx, ids.identity())
		},
	},
	{
		use: "profile-update", short: "Whether the profile needs updating", requires: rollFlags,
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.CheckUpdateProfile(ctx, ids.identity())
		},
	},
	{
		use: "survey", short: "Required surveys for a user", requires: []string{"username"},
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetRequiredSurvey(ctx, ids.username)
		},
	},
	{
		use: "semesters", short: "Semesters of a campus", requires: []string{"campus"},
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetSemester(ctx, ids.campus, ids.authen)
		},
	},
	{
		use: "subjects", short: "Subjects offered in a semester", requires: []string{"campus", "semester"},
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetSubjectBySemester(ctx, ids.campus, ids.semester, ids.authen)
		},
	},
	{
		use: "week-by-date", short: "Academic week for a date", requires: []string{"date"},
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetWeekByDate(ctx, ids.date)
		},
	},
	{
		use: "attendances", short: "Attendance for a semester", requires: withSemester(rollFlags...),
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetStudentAttendances(ctx, ids.identity(), ids.semester)
		},
	},
	{
		use: "exams", short: "Exam schedule for a semester", requires: withSemester(rollFlags...),
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetExamSchedule(ctx, ids.identity(), ids.semester)
		},
	},
	{
		use: "marks", short: "Marks for a semester", requires: withSemester(rollFlags...),
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetStudentMark(ctx, ids.identity(), ids.semester)
		},
	},
	{
		use: "news", short: "Top news of a campus", requires: []string{"campus", "type"},
		call: func(ctx context.Context, c *api.Client, ids identifierFlags) api.Response {
			return c.GetTop10News(ctx, ids.campus, ids.authen, ids.newsType)
		},
	},
}

func newOperationCmd(opts *cliOptions, op operation) *cobra.Command {
	short := op.short
	if len(op.requires) > 0 {
		short = fmt.Sprintf("%s (requires --%s)", op.short, strings.Join(op.requires, ", --"))
	}
	return &cobra.Command{
		Use:   op.use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, opts, op)
		},
	}
}

func runOperation(cmd *cobra.Command, opts *cliOptions, op operation) error {
	// Everything that can be rejected locally is rejected before the network call.
	if err := checkRequired(opts.ids, op.requires); err != nil {
		return err
	}
	if opts.output != "" {
		if _, err := formatter.New(opts.output); err != nil {
			return err
		}
	}

	cfg, err := opts.setup()
	if err != nil {
		return err
	}
	client, err := opts.newClient(cfg)
	if err != nil {
		util.LogErrorf("Failed to create client: %v", err)
		return err
	}

	resp := op.call(cmd.Context(), client, opts.ids)
	if err := opts.render(cmd.OutOrStdout(), resp); err != nil {
		util.LogErrorf("Failed to render %s output: %v", op.use, err)
		return err
	}
	if !resp.Success {
		return ErrUnsuccessful
	}
	return nil
}

func checkRequired(ids identifierFlags, required []string) error {
	var missing []string
	for _, name := range required {
		if strings.TrimSpace(ids.value(name)) == "" {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}
	return nil
}
