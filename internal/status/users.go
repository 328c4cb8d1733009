package status

import (
	"context"
	"strings"
)

const (
	sourceW = "w"

	loggedInUserFields = 6
)

type LoggedInUser struct {
	User  string `json:"user" yaml:"user"`
	TTY   string `json:"tty" yaml:"tty"`
	Login string `json:"login" yaml:"login"`
	Idle  string `json:"idle" yaml:"idle"`
	JCPU  string `json:"jcpu" yaml:"jcpu"`
	PCPU  string `json:"pcpu" yaml:"pcpu"`
	What  string `json:"what" yaml:"what"`
}

// W lists logged-in users via `w -h`.
func (c *Collector) W(ctx context.Context) ([]LoggedInUser, error) {
	out, err := c.runCommand(ctx, "w", "-h")
	if err != nil {
		return nil, err
	}

	users, skipped := parseW(out)
	c.report(sourceW, skipped)

	return users, nil
}

func parseW(text string) ([]LoggedInUser, []*ParseError) {
	users := []LoggedInUser{}
	var skipped []*ParseError

	for _, l := range scanLines(text) {
		if pe := require(sourceW, l, loggedInUserFields); pe != nil {
			skipped = append(skipped, pe)
			continue
		}

		f := l.fields
		users = append(users, LoggedInUser{
			User:  f[0],
			TTY:   f[1],
			Login: f[2],
			Idle:  f[3],
			JCPU:  f[4],
			PCPU:  f[5],
			What:  strings.Join(f[6:], " "),
		})
	}

	return users, skipped
}
