package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/mdp/qrterminal/v3"
	"github.com/spf13/cobra"
)

var qrText string

var qrCmd = &cobra.Command{
	Use:   "qr",
	Short: "Print a click-to-chat QR code for the store's WhatsApp number",
	Long: `Prints a wa.me link and its QR code so customers can scan it from a
poster or the shop counter. The number comes from STORE_WHATSAPP_NUMBER
or, failing that, TWILIO_WHATSAPP_FROM.`,
	RunE: runQR,
}

func init() {
	qrCmd.Flags().StringVar(&qrText, "text", "hi", "message prefilled in the customer's chat")
}

func runQR(cmd *cobra.Command, args []string) error {
	link, err := clickToChatURL(cfg.Store.WhatsAppNumber, qrText)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "📱 Scan to chat with %s\n%s\n\n", cfg.Store.Name, link)
	qrterminal.GenerateHalfBlock(link, qrterminal.L, out)
	return nil
}

// clickToChatURL builds a wa.me link from an E.164 or "whatsapp:" prefixed number
func clickToChatURL(number, text string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, strings.TrimPrefix(number, "whatsapp:"))
	if digits == "" {
		return "", errors.New("store WhatsApp number is not configured (set STORE_WHATSAPP_NUMBER)")
	}

	link := "https://wa.me/" + digits
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link, nil
}
