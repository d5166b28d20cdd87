package bot

import (
	"fmt"
	"html"
	"strings"

	"github.com/sipeed/picotts/pkg/commands"
	"github.com/sipeed/picotts/pkg/voicestate"
)

const (
	textVoicesNotConfigured = "Sorry, the ElevenLabs API key is not configured by the admin."
	textVoicesUnavailable   = "Could not fetch voices from ElevenLabs at the moment. Please try again later or contact the admin."
	textChooseVoice         = "Choose your desired voice:"
	textInvalidSelection    = "Error processing selection. Invalid data."
	textTTSNotConfigured    = "Admin alert: ElevenLabs API key is not set. Cannot process TTS."
	textSendAudioFailed     = "Sorry, I encountered an error while sending the audio."
	textUnexpectedError     = "An unexpected error occurred. The bot admin has been notified. Please try again later."
)

func welcomeText(firstName string, withPicker bool) string {
	name := strings.TrimSpace(firstName)
	if name == "" {
		name = "there"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s! 👋 Welcome to the ElevenLabs TTS Bot! ✨\n\n", html.EscapeString(name))
	b.WriteString("I can turn your text into super realistic speech using ElevenLabs AI.\n\n")
	b.WriteString("Here's how to get started:\n")
	b.WriteString("1.  Simply send me any text message.\n")
	if withPicker {
		b.WriteString("2.  Use /voices to see available voices and choose your favorite.\n")
		b.WriteString("3.  I'll send back an audio message 🗣️🎶\n\n")
	} else {
		b.WriteString("2.  I'll send back an audio message 🗣️🎶\n\n")
	}
	b.WriteString("Type /help for more commands and info.")
	return b.String()
}

func helpText(defs []commands.Definition, pref voicestate.Preference) string {
	var b strings.Builder
	b.WriteString("🤖 <b>Bot Commands &amp; Info</b> 🤖\n\n")
	b.WriteString("Simply send me any text, and I'll convert it to speech!\n\n")
	for _, line := range strings.Split(commands.FormatHelpLines(defs), "\n") {
		b.WriteString("🔹 " + html.EscapeString(line) + "\n")
	}
	fmt.Fprintf(&b, "\n🗣️ Your current selected voice: <b>%s</b> (ID: <code>%s</code>).\n\n",
		html.EscapeString(pref.VoiceName), html.EscapeString(pref.VoiceID))
	b.WriteString("This bot uses the ElevenLabs API. Ensure the API key is valid and has enough quota.")
	return b.String()
}

func voiceSetText(name string) string {
	return fmt.Sprintf("✨ Voice set to: <b>%s</b> ✨\nSend me some text to try it out!", html.EscapeString(name))
}

func ttsFailedText(withPicker bool) string {
	var b strings.Builder
	b.WriteString("Sorry, I couldn't convert your text to speech. 😔\n")
	b.WriteString("This might be due to:\n")
	b.WriteString("- An issue with the ElevenLabs API.\n")
	b.WriteString("- Invalid or exhausted API key quota.\n")
	b.WriteString("- The selected voice might be unavailable.\n\n")
	if withPicker {
		b.WriteString("Please try again later or select a different voice using /voices.")
	} else {
		b.WriteString("Please try again later.")
	}
	return b.String()
}

func voiceCaption(name string) string {
	return "🎙️ Voice: " + name
}
