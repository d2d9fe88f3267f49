package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var chatFrom string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the bot from the terminal",
	Long: `Reads one message per line from stdin and prints the bot's reply.
Type "exit" or send EOF to quit. Sessions live only for this run.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatFrom, "from", "+94770000000", "sender id to chat as")
}

func runChat(cmd *cobra.Command, args []string) error {
	b, err := newBot(cfg, logger)
	if err != nil {
		return err
	}
	return chatLoop(b, chatFrom, cmd.InOrStdin(), cmd.OutOrStdout())
}

// chatLoop feeds each input line to the bot until EOF or "exit"
func chatLoop(b *bot, from string, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "💬 Chatting with %s as %s. Type \"exit\" to quit.\n\n", cfg.Store.Name, from)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.EqualFold(strings.TrimSpace(line), "exit") {
			break
		}

		reply, err := b.whatsapp.ProcessMessage(from, line)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s\n\n", reply)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}
