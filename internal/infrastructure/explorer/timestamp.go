package explorer

import (
	"context"
	"time"
)

// DateFormat is the upstream time format, yyyy-MM-dd HH:mm:ss.
const DateFormat = "2006-01-02 15:04:05"

// ParseTimestamp parses text as a UTC DateFormat timestamp and returns nil if it
// does not match.
//
// The format argument is accepted for callers that pass one, but it is not used:
// DateFormat is always applied.
func (c *Client) ParseTimestamp(text, format string) *time.Time {
	return c.parseTimestamp(context.Background(), text, format)
}

func (c *Client) parseTimestamp(ctx context.Context, text, format string) *time.Time {
	t, err := time.ParseInLocation(DateFormat, text, time.UTC)
	if err != nil {
		c.log(ctx).LogWarning(ctx, "Parse date time failed",
			"text", text,
			"requested_format", format,
			"error", err.Error())
		return nil
	}
	return &t
}
