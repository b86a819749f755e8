// Package shell implements the line-oriented interactive interface over the
// user service. It owns prompting, input coercion and error rendering; all
// business rules live below it. Recoverable failures print their message
// and return to the command prompt, so a bad input never ends the session.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/userbook/userbook/internal/platform/logger"
	"github.com/userbook/userbook/internal/service"
)

const commandList = "Commands: create | read | update | delete | delete-email | help | exit"

// Shell reads commands from in, drives the user service, and renders
// results and error messages to out.
type Shell struct {
	users  service.UserService
	in     *bufio.Scanner
	out    io.Writer
	logger *slog.Logger
}

// New creates a Shell over the given service and streams. If log is nil,
// the default logger is used.
func New(users service.UserService, in io.Reader, out io.Writer, log *slog.Logger) *Shell {
	if log == nil {
		log = slog.Default()
	}
	return &Shell{
		users:  users,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: log.With(slog.String("component", "shell")),
	}
}

// Run executes the command loop until "exit" or end of input.
// Each command gets its own operation id attached to the context logger so
// everything the lower layers log for that command can be correlated.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, commandList)

	for {
		fmt.Fprint(s.out, "> ")
		line, ok := s.readLine()
		if !ok {
			return s.in.Err()
		}

		cmd := strings.ToLower(strings.TrimSpace(line))
		if cmd == "" {
			continue
		}
		if cmd == "exit" || cmd == "quit" {
			return nil
		}

		cmdCtx := logger.WithLogger(ctx, s.logger.With(
			slog.String("op_id", uuid.NewString()),
			slog.String("command", cmd)))

		switch cmd {
		case "help":
			fmt.Fprintln(s.out, commandList)
		case "create":
			s.handleCreate(cmdCtx)
		case "read":
			s.handleRead(cmdCtx)
		case "update":
			s.handleUpdate(cmdCtx)
		case "delete":
			s.handleDelete(cmdCtx)
		case "delete-email":
			s.handleDeleteByEmail(cmdCtx)
		default:
			fmt.Fprintf(s.out, "Unknown command. %s\n", commandList)
		}
	}
}

func (s *Shell) handleCreate(ctx context.Context) {
	name, ok := s.readRequiredString("Enter user name")
	if !ok {
		return
	}
	email, ok := s.readRequiredString("Enter user email")
	if !ok {
		return
	}
	age, ok := s.readAge("Enter user age")
	if !ok {
		return
	}

	user, err := s.users.CreateUser(ctx, name, email, age)
	if err != nil {
		s.renderError(ctx, err)
		return
	}
	fmt.Fprintf(s.out, "User successfully created: %s\n", user)
}

func (s *Shell) handleRead(ctx context.Context) {
	id, ok := s.readID("Enter user id")
	if !ok {
		return
	}

	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		s.renderError(ctx, err)
		return
	}
	fmt.Fprintf(s.out, "User by your id: %s\n", user)
}

func (s *Shell) handleUpdate(ctx context.Context) {
	id, ok := s.readID("Enter user id")
	if !ok {
		return
	}
	name, ok := s.readOptionalString("Enter new name (blank keeps current)")
	if !ok {
		return
	}
	email, ok := s.readOptionalString("Enter new email (blank keeps current)")
	if !ok {
		return
	}
	age, ok := s.readOptionalAge("Enter new age (blank keeps current)")
	if !ok {
		return
	}

	user, err := s.users.UpdateUser(ctx, id, name, email, age)
	if err != nil {
		s.renderError(ctx, err)
		return
	}
	fmt.Fprintf(s.out, "Updated user: %s\n", user)
}

func (s *Shell) handleDelete(ctx context.Context) {
	id, ok := s.readID("Enter user id")
	if !ok {
		return
	}

	if err := s.users.DeleteUserByID(ctx, id); err != nil {
		s.renderError(ctx, err)
		return
	}
	fmt.Fprintln(s.out, "User deleted.")
}

func (s *Shell) handleDeleteByEmail(ctx context.Context) {
	email, ok := s.readRequiredString("Enter user email")
	if !ok {
		return
	}

	if err := s.users.DeleteUserByEmail(ctx, email); err != nil {
		s.renderError(ctx, err)
		return
	}
	fmt.Fprintln(s.out, "User deleted.")
}

// renderError prints the error's message text. Classified errors carry a
// message the user can act on; OperationError already hides its cause
// behind a stable "try again later" message.
func (s *Shell) renderError(ctx context.Context, err error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if service.IsRecoverable(err) {
		log.Warn("command failed", slog.String("error", err.Error()))
	} else {
		log.Error("command failed", slog.String("error", err.Error()))
	}
	fmt.Fprintln(s.out, err.Error())
}
