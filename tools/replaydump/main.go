package main

import (
	"arena-server/internal/domain"
	"arena-server/internal/infrastructure/storage"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

func main() {
	if len(os.Args) < 3 {
		printHelp()
		return
	}

	session, err := storage.LoadReplay(os.Args[2])
	if err != nil {
		fmt.Printf("Invalid replay: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "info":
		fmt.Printf("battle:  %s\n", session.BattleID)
		fmt.Printf("seed:    %d\n", session.Seed)
		fmt.Printf("started: %s\n", time.Unix(session.Timestamp, 0).Format(time.RFC3339))
		fmt.Printf("actions: %d\n", len(session.Actions))
	case "actions":
		for n, a := range session.Actions {
			fmt.Printf("%4d  turn %-3d %-4s %-8s %s\n", n, a.Turn, a.Actor, a.Command, payloadText(a))
		}
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(session); err != nil {
			fmt.Printf("Encode failed: %v\n", err)
			os.Exit(1)
		}
	default:
		printHelp()
	}
}

func payloadText(a domain.ReplayAction) string {
	if len(a.Payload) == 0 {
		return "-"
	}
	return string(a.Payload)
}

func printHelp() {
	fmt.Println(`Replay Dump - просмотр файлов реплея .arrp
Commands:
  info <file>      - заголовок: бой, сид, время, число команд
  actions <file>   - список записанных команд
  json <file>      - вся запись в JSON`)
}
