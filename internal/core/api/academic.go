package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/penwyp/go-campus-client/internal/util"
)

// GetExtracurricularPoints fetches movement points for a semester. This endpoint uses a
// lower-case "semester" parameter.
func (c *Client) GetExtracurricularPoints(ctx context.Context, id Identity, semester string) Response {
	params := c.rollParams(id)
	params.Set("semester", semester)
	return c.get(ctx, "GetDiemphongtrao", params)
}

// GetActivityStudent fetches the timetable for a semester.
func (c *Client) GetActivityStudent(ctx context.Context, id Identity, semester string) Response {
	params := c.rollParams(id)
	params.Set("Semester", semester)
	return c.get(ctx, "GetActivityStudent", params)
}

// GetActivityStudentByWeek fetches the timetable for one week.
func (c *Client) GetActivityStudentByWeek(ctx context.Context, id Identity, week, semester, year string) Response {
	params := c.rollParams(id)
	params.Set("week", week)
	params.Set("Semester", semester)
	params.Set("year", year)
	return c.get(ctx, "GetActivityStudentByWeek", params)
}

// GetStudentAttendances fetches the attendance summary for a semester.
func (c *Client) GetStudentAttendances(ctx context.Context, id Identity, semester string) Response {
	params := c.rollParams(id)
	params.Set("Semester", semester)
	return c.get(ctx, "GetStudentAttendances", params)
}

// GetExamSchedule fetches the exam schedule for a semester.
func (c *Client) GetExamSchedule(ctx context.Context, id Identity, semester string) Response {
	params := c.rollParams(id)
	params.Set("Semester", semester)
	return c.get(ctx, "GetScheduleExam", params)
}

// GetStudentMark fetches marks for a semester.
func (c *Client) GetStudentMark(ctx context.Context, id Identity, semester string) Response {
	params := c.rollParams(id)
	params.Set("Semester", semester)
	return c.get(ctx, "GetStudentMark", params)
}

// GetSemester lists semesters. Signed with variant A over the campus code.
func (c *Client) GetSemester(ctx context.Context, campusCode, authen string) Response {
	params := url.Values{
		"campusCode": {campusCode},
		"Authen":     {c.authen(authen)},
		"checksum":   {c.signer.A(campusCode)},
	}
	return c.get(ctx, "GetSemester", params)
}

// GetSubjectBySemester lists subjects. Signed with variant K and an empty identifier.
func (c *Client) GetSubjectBySemester(ctx context.Context, campusCode, semester, authen string) Response {
	params := url.Values{
		"campusCode": {campusCode},
		"Semester":   {semester},
		"Authen":     {c.authen(authen)},
		"checksum":   {c.signer.K("", campusCode)},
	}
	return c.get(ctx, "GetSubjectBySemester", params)
}

// GetWeekByDate resolves the academic week for a date value.
//
// The app computes a variant A checksum over the date but never sends it, and the backend
// accepts the request without one. Only the date is transmitted; do not add the checksum.
func (c *Client) GetWeekByDate(ctx context.Context, date string) Response {
	unused := c.signer.A(date)
	util.LogDebugf("GetWeekByDate computed a %d-char checksum that is intentionally not sent", len(unused))

	params := url.Values{
		"date": {date},
	}
	return c.get(ctx, "GetWeekByDate", params)
}

// GetTop10News fetches the latest news. Signed with variant K over the news type.
func (c *Client) GetTop10News(ctx context.Context, campusCode, authen, newsType string) Response {
	params := url.Values{
		"campusCode": {campusCode},
		"Authen":     {c.authen(authen)},
		"type":       {newsType},
		"checksum":   {c.signer.K(newsType, campusCode)},
	}
	return c.get(ctx, "GetTop10News", params)
}

// NormalizeUsername lower-cases and trims a survey username.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// GetRequiredSurvey asks the survey backend which surveys the user must complete.
// The normalized username is both signed (variant Y, empty campus code) and transmitted.
func (c *Client) GetRequiredSurvey(ctx context.Context, username string) Response {
	normalized := NormalizeUsername(username)
	params := url.Values{
		"username": {normalized},
		"checksum": {c.signer.Y(normalized, "")},
	}
	return c.do(ctx, http.MethodGet, c.surveyURL, "GetRequiredSurvey", params, false)
}
