package api

import (
	"context"
	"net/http"
	"net/url"
)

// Identity is what the caller holds for most student endpoints. Authen is forwarded verbatim;
// an empty value falls back to the configured AUTHEN_KEY.
type Identity struct {
	CampusCode string
	RollNumber string
	Authen     string
}

// Rating is one answer submitted through AddRate.
type Rating struct {
	ID      string
	Value   string
	Comment string
}

// rollParams builds the common campusCode/rollNumber/Authen/checksum set, signed with
// variant K over the roll number.
func (c *Client) rollParams(id Identity) url.Values {
	return url.Values{
		"campusCode": {id.CampusCode},
		"rollNumber": {id.RollNumber},
		"Authen":     {c.authen(id.Authen)},
		"checksum":   {c.signer.K(id.RollNumber, id.CampusCode)},
	}
}

// GetStudentByID fetches the student record.
func (c *Client) GetStudentByID(ctx context.Context, id Identity) Response {
	return c.get(ctx, "GetStudentById", c.rollParams(id))
}

// GetStudentRate fetches the rating questions open to the student.
func (c *Client) GetStudentRate(ctx context.Context, id Identity) Response {
	return c.get(ctx, "GetStudentRate", c.rollParams(id))
}

// AddRate submits one rating. The signature covers the rating ID, not the roll number.
//
// The app sends this POST with its parameters in the query string and no body. That looks like
// a bug in the app but the backend expects it, so it stays the default; WithRatingJSONBody
// opts into a JSON body instead.
func (c *Client) AddRate(ctx context.Context, campusCode, authen string, rating Rating) Response {
	params := url.Values{
		"campusCode":  {campusCode},
		"Authen":      {c.authen(authen)},
		"rateid":      {rating.ID},
		"rateValue":   {rating.Value},
		"rateComment": {rating.Comment},
		"checksum":    {c.signer.K(rating.ID, campusCode)},
	}
	return c.do(ctx, http.MethodPost, c.baseURL, "AddRate", params, c.ratingJSONBody)
}

// GetBalance fetches the student's account balance.
func (c *Client) GetBalance(ctx context.Context, id Identity) Response {
	return c.get(ctx, "GetBalance", c.rollParams(id))
}

// GetFeeByRoll fetches tuition fees. The endpoint name is misspelled on the backend.
func (c *Client) GetFeeByRoll(ctx context.Context, id Identity) Response {
	return c.get(ctx, "GeFeeByRoll", c.rollParams(id))
}

// GetApplication fetches the student's submitted applications.
func (c *Client) GetApplication(ctx context.Context, id Identity) Response {
	return c.get(ctx, "GetApplication", c.rollParams(id))
}

// RetrieveImage fetches the profile image. The endpoint name is misspelled on the backend.
func (c *Client) RetrieveImage(ctx context.Context, id Identity) Response {
	return c.get(ctx, "RetriveImage", c.rollParams(id))
}

// GetNotificationByRoll fetches the student's notifications.
func (c *Client) GetNotificationByRoll(ctx context.Context, id Identity) Response {
	return c.get(ctx, "GetNotificationByRoll", c.rollParams(id))
}

// GetCampusInfo fetches details of the student's campus.
func (c *Client) GetCampusInfo(ctx context.Context, id Identity) Response {
	return c.get(ctx, "GetCampusInfo", c.rollParams(id))
}

// CheckOpenFeedback reports whether the feedback window is open.
func (c *Client) CheckOpenFeedback(ctx context.Context, id Identity) Response {
	return c.get(ctx, "CheckOpenFeedBack", c.rollParams(id))
}

// CheckUpdateProfile reports whether the student must update their profile.
func (c *Client) CheckUpdateProfile(ctx context.Context, id Identity) Response {
	return c.get(ctx, "CheckUpdateProfile", c.rollParams(id))
}
