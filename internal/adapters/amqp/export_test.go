package amqpad

// NewWithChannel builds a Publisher around a prepared channel.
func NewWithChannel(ch channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange}
}
