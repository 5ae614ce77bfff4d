package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/benbeisheim/variantchess-backend/internal/engine"
)

func main() {
	in := bufio.NewScanner(os.Stdin)
	mode, ok := chooseMode(in, os.Stdout)
	if !ok {
		return
	}
	if err := newConsole(in, os.Stdout, engine.NewSession(mode)).play(); err != nil {
		log.Fatal(err)
	}
}

func chooseMode(in *bufio.Scanner, out io.Writer) (engine.GameMode, bool) {
	fmt.Fprintln(out, "Choose a game mode:")
	fmt.Fprintln(out, "1 - Classical chess")
	fmt.Fprintln(out, "2 - Variant chess (archer, striker, oracle)")
	fmt.Fprintln(out, "3 - Checkers")
	for {
		fmt.Fprint(out, "Enter 1, 2 or 3: ")
		if !in.Scan() {
			return engine.Classical, false
		}
		switch choice := in.Text(); choice {
		case "1", "2", "3":
			mode, _ := engine.ParseGameMode(choice)
			return mode, true
		}
		fmt.Fprintln(out, "Invalid choice. Enter 1, 2 or 3.")
	}
}
