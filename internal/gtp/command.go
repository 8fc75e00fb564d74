package gtp

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is one parsed request line. Sequence is -1 when the controller did
// not number the command.
type Command struct {
	Sequence int
	Name     string
	Args     []string
}

// ParseCommand splits a request line. Comments after '#' are dropped, and
// ok is false when nothing is left.
func ParseCommand(line string) (cmd Command, ok bool) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, false
	}
	cmd.Sequence = -1
	if n, err := strconv.Atoi(fields[0]); err == nil && n >= 0 {
		cmd.Sequence = n
		fields = fields[1:]
		if len(fields) == 0 {
			return Command{}, false
		}
	}
	cmd.Name = fields[0]
	cmd.Args = fields[1:]
	return cmd, true
}

type Response struct {
	Success bool
	Body    string
}

func success(body string) Response { return Response{Success: true, Body: body} }
func failure(body string) Response { return Response{Body: body} }

func boolResponse(b bool) Response {
	return success(strconv.FormatBool(b))
}

// Serialize formats r as the answer to cmd, including the blank line that
// ends every GTP response.
func Serialize(cmd Command, r Response) string {
	status := "?"
	if r.Success {
		status = "="
	}
	seq := ""
	if cmd.Sequence >= 0 {
		seq = strconv.Itoa(cmd.Sequence)
	}
	return fmt.Sprintf("%s%s %s\n\n", status, seq, r.Body)
}
