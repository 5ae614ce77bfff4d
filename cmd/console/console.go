package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/benbeisheim/variantchess-backend/internal/engine"
	"github.com/benbeisheim/variantchess-backend/internal/notation"
	"github.com/benbeisheim/variantchess-backend/internal/render"
)

// errQuit ends the game loop on "exit" or end of input.
var errQuit = errors.New("quit")

// errUndone restarts the turn after an undo command.
var errUndone = errors.New("undone")

type console struct {
	in      *bufio.Scanner
	out     io.Writer
	session *engine.Session
}

func newConsole(in *bufio.Scanner, out io.Writer, session *engine.Session) *console {
	return &console{in: in, out: out, session: session}
}

func (c *console) printBoard() {
	fmt.Fprint(c.out, render.Text(c.session.Board(), render.Overlay{
		Hints:   c.session.Hints(),
		Threats: c.session.ThreatDetector(),
	}))
}

// readSquare prompts until it gets a square, handling exit and undo N on the way.
func (c *console) readSquare(prompt string) (engine.Square, error) {
	for {
		fmt.Fprint(c.out, prompt)
		if !c.in.Scan() {
			return engine.Square{}, errQuit
		}
		line := strings.ToLower(strings.TrimSpace(c.in.Text()))
		switch {
		case line == "exit":
			return engine.Square{}, errQuit
		case strings.HasPrefix(line, "undo"):
			c.undo(strings.TrimSpace(strings.TrimPrefix(line, "undo")))
			return engine.Square{}, errUndone
		}
		sq, err := notation.ParseSquare(line)
		if err == nil {
			return sq, nil
		}
		fmt.Fprintln(c.out, "Invalid input. Use a square like e2.")
	}
}

func (c *console) undo(arg string) {
	steps, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintln(c.out, "Invalid undo command. Use undo N.")
		return
	}
	switch err := c.session.Undo(steps); {
	case errors.Is(err, engine.ErrInvalidSteps):
		fmt.Fprintln(c.out, "Undo needs a positive number of moves.")
	case errors.Is(err, engine.ErrCannotUndo):
		fmt.Fprintf(c.out, "Cannot undo %d moves, only %d were made.\n", steps, c.session.HistoryDepth())
	case err != nil:
		fmt.Fprintln(c.out, err)
	default:
		fmt.Fprintf(c.out, "Undone. %d moves left in history.\n", c.session.HistoryDepth())
	}
}

func (c *console) play() error {
	for {
		err := c.turn()
		switch {
		case errors.Is(err, errQuit):
			return nil
		case errors.Is(err, errUndone):
			continue
		case err != nil:
			return err
		}
	}
}

func (c *console) turn() error {
	defer c.session.ClearSelection()

	c.printBoard()
	if c.session.Threats().Check {
		fmt.Fprintf(c.out, "Check! The %s king is in danger!\n", c.session.ToMove())
	}
	fmt.Fprintf(c.out, "%s to move. Moves played: %d\n", c.session.ToMove(), c.session.MoveCount())

	start, err := c.readSquare("Select a piece (e.g. e2): ")
	if err != nil {
		return err
	}
	if _, err := c.session.Select(start); err != nil {
		switch {
		case errors.Is(err, engine.ErrEmptySquare):
			fmt.Fprintln(c.out, "There is no piece on that square.")
		case errors.Is(err, engine.ErrNotYourTurn):
			fmt.Fprintln(c.out, "It is the other side's turn.")
		default:
			fmt.Fprintln(c.out, err)
		}
		return nil
	}
	c.printBoard()

	end, err := c.readSquare("Select a destination (e.g. e4): ")
	if err != nil {
		return err
	}
	if err := c.session.Move(start, end); err != nil {
		fmt.Fprintln(c.out, "Illegal move, try again.")
	}
	return nil
}
