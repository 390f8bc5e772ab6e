package notifier

// TextNotifier sends a plain text message to some alert channel.
type TextNotifier interface {
	SendText(text string) error
}
