package main

import (
	"fmt"
	"os"

	"github.com/kingrea/wanderguide/internal/quiz"
)

func handleQuestionsCommand() bool {
	if len(os.Args) < 2 || os.Args[1] != "questions" {
		return false
	}
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: wanderguide questions /path/to/bank.yaml")
		os.Exit(2)
	}
	bank, err := quiz.LoadBankFile(os.Args[2])
	if err != nil {
		fmt.Printf("Invalid: %s\n- %v\n", os.Args[2], err)
		os.Exit(1)
	}
	name := bank.Name
	if name == "" {
		name = "unnamed bank"
	}
	fmt.Printf("OK: %s (%s, %d questions)\n", os.Args[2], name, bank.Len())
	for i, q := range bank.Questions {
		fmt.Printf("%d. %s [%d options]\n", i+1, q.Prompt, len(q.Options))
	}
	return true
}
