package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var (
	yesAnswers = []string{"yes", "y", "ye", ""}
	noAnswers  = []string{"no", "n"}
)

// Prompter asks questions on a line based input. Passwords are read without
// echo when the input is a terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}
	return p
}

func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	text, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && text != "") {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (p *Prompter) ReadPassword(prompt string) (string, error) {
	if p.fd < 0 {
		return p.ReadLine(prompt)
	}
	fmt.Fprint(p.out, prompt)
	bytePwd, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(bytePwd)), nil
}

// Confirm asks a yes/no question. An empty answer means yes; anything outside
// the known answers returns ErrIncorrectAnswer.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.ReadLine(question + " ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	for _, a := range yesAnswers {
		if answer == a {
			return true, nil
		}
	}
	for _, a := range noAnswers {
		if answer == a {
			return false, nil
		}
	}
	return false, ErrIncorrectAnswer
}

// ConfirmOverwrite asks whether an existing target may be replaced.
func (p *Prompter) ConfirmOverwrite(target string) (bool, error) {
	return p.Confirm(fmt.Sprintf("[%s] File or directory exists, do you want to overwrite it? [Y/n]", target))
}
