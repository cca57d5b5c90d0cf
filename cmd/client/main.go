// Command client is a small terminal client for the Sathee backend:
// account management plus a chat session with local-only history.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"sathee-backend/internal/client/api"
	"sathee-backend/internal/client/chatstore"
	"sathee-backend/internal/client/session"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	baseURL := os.Getenv("SATHEE_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	dir, err := stateDir()
	if err != nil {
		log.Fatal(err)
	}

	store, err := session.NewFileStore(filepath.Join(dir, "session.json"))
	if err != nil {
		log.Fatal(err)
	}
	guard := session.NewGuard(store)
	client := api.New(baseURL, guard)

	ctx := context.Background()
	args := os.Args[2:]

	switch os.Args[1] {
	case "signup":
		requireArgs(args, 3, "signup <full-name> <email> <password>")
		user, err := client.Signup(ctx, args[0], args[1], args[2], args[2])
		exitOn(err)
		fmt.Printf("signed up as %s (%s), role %s\n", user.FullName, user.Email, user.Role)

	case "login":
		requireArgs(args, 2, "login <email> <password>")
		user, err := client.Login(ctx, args[0], args[1])
		exitOn(err)
		fmt.Printf("logged in as %s\n", user.FullName)

	case "logout":
		exitOn(guard.Logout())
		fmt.Println("logged out")

	case "whoami":
		if user := guard.User(); user != nil {
			fmt.Printf("%s <%s> role=%s\n", user.FullName, user.Email, user.Role)
		} else {
			fmt.Println("not logged in")
		}

	case "forgot-password":
		requireArgs(args, 1, "forgot-password <email>")
		exitOn(client.ForgotPassword(ctx, args[0]))
		fmt.Println("reset link sent")

	case "reset-password":
		requireArgs(args, 2, "reset-password <code> <new-password>")
		exitOn(client.ResetPassword(ctx, args[0], args[1], args[1]))
		fmt.Println("password reset")

	case "delete-account":
		requireArgs(args, 2, "delete-account <email> <password>")
		exitOn(client.DeleteAccount(ctx, args[0], args[1]))
		fmt.Println("account deleted")

	case "chat":
		runChat(ctx, client, guard, dir)

	default:
		usage()
		os.Exit(2)
	}
}

func runChat(ctx context.Context, client *api.Client, guard *session.Guard, dir string) {
	history, err := chatstore.New(filepath.Join(dir, "chats.json"))
	if err != nil {
		log.Fatal(err)
	}

	if user := guard.User(); user != nil {
		fmt.Println("chatting as", user.FullName)
	} else {
		fmt.Println("chatting as guest")
	}
	fmt.Println("type your message, or /quit to exit")

	chatID := uuid.New().String()
	var messages []chatstore.Message

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "/quit" {
			break
		}

		reply, err := client.Chat(ctx, input)
		if err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				fmt.Println("session expired, please log in again")
				_ = guard.Logout()
				return
			}
			// Keep the conversation alive when the model is down.
			fmt.Println("bot: I'm having trouble responding right now. Please try again in a moment.")
			continue
		}

		fmt.Println("bot:", reply.BotResponse)
		messages = append(messages,
			chatstore.Message{Sender: "user", Text: input},
			chatstore.Message{Sender: "bot", Text: reply.BotResponse},
		)
		if err := history.Save(chatID, messages); err != nil {
			log.Printf("failed to save chat history: %v", err)
		}
	}
}

func stateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".sathee")
	return dir, os.MkdirAll(dir, 0o700)
}

func requireArgs(args []string, n int, usage string) {
	if len(args) < n {
		fmt.Fprintln(os.Stderr, "usage: client", usage)
		os.Exit(2)
	}
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: client <command> [args]

commands:
  signup <full-name> <email> <password>
  login <email> <password>
  logout
  whoami
  chat
  forgot-password <email>
  reset-password <code> <new-password>
  delete-account <email> <password>`)
}
