package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Unrecognized is what a menu choice becomes when the role may not use it.
const Unrecognized = 69

const bar = "=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*=*="

// ErrInputClosed ends the session: there is nobody left to answer prompts.
var ErrInputClosed = errors.New("input closed")

// Console is the interactive sink: prompts and data go to Out, errors to Err.
type Console struct {
	in  *bufio.Reader
	Out io.Writer
	Err io.Writer
}

func New(in io.Reader, out, errOut io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), Out: out, Err: errOut}
}

// ReadLine blocks until a newline and returns the line trimmed.
// A final line without a newline is still returned.
func (c *Console) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Ask prints prompt and reads the answer.
func (c *Console) Ask(prompt string) (string, error) {
	fmt.Fprint(c.Out, prompt)
	return c.ReadLine()
}

// AskInt repeats prompt until the answer parses as an integer.
func (c *Console) AskInt(prompt string) (int, error) {
	for {
		line, err := c.Ask(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(c.Out, "Your input is invalid!")
	}
}

// AskFloat repeats prompt until the answer parses as a decimal number.
func (c *Console) AskFloat(prompt string) (float64, error) {
	for {
		line, err := c.Ask(prompt)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(line, 64)
		if err == nil {
			return f, nil
		}
		fmt.Fprintln(c.Out, "Your input is invalid!")
	}
}

// AskIntWhere repeats prompt until an integer satisfies valid; invalid answers get reject printed.
func (c *Console) AskIntWhere(prompt string, valid func(int) bool, reject string) (int, error) {
	for {
		n, err := c.AskInt(prompt)
		if err != nil {
			return 0, err
		}
		if valid(n) {
			return n, nil
		}
		fmt.Fprintln(c.Out, reject)
	}
}

// ReadChoice reads a menu number. Before login any integer is accepted; afterwards a choice
// the role may not use is turned into Unrecognized.
func (c *Console) ReadChoice(preAuth bool, allows func(int) bool) (int, error) {
	n, err := c.AskInt("\nPlease make your choice: ")
	if err != nil {
		return 0, err
	}
	if !preAuth && allows != nil && !allows(n) {
		return Unrecognized, nil
	}
	return n, nil
}

func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.Out, a...)
}

func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.Out, format, a...)
}

// Errorln writes to the error sink.
func (c *Console) Errorln(a ...any) {
	fmt.Fprintln(c.Err, a...)
}

// Banner opens a framed section.
func (c *Console) Banner(title string) {
	fmt.Fprintln(c.Out, "\n"+bar)
	fmt.Fprintln(c.Out, "\t\t\t    "+title)
	fmt.Fprintln(c.Out, bar)
}

// EndBanner closes a framed section.
func (c *Console) EndBanner() {
	fmt.Fprint(c.Out, bar+"\n\n")
}

// Greeting is printed once at start-up.
func (c *Console) Greeting() {
	fmt.Fprint(c.Out, "\n\n*******************************************************\n"+
		"\t\tUser Interface\n"+
		"*******************************************************\n\n")
}
