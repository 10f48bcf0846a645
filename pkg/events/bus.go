package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// Tópicos publicados pelos componentes do toolkit.
const (
	TopicLoggedIn           = "session.logged_in"
	TopicLoggedOut          = "session.logged_out"
	TopicEntitlementExpired = "entitlement.expired"
)

// Handler recebe o payload publicado em um tópico.
type Handler func(payload interface{})

// Bus é um barramento de eventos in-process.
//
// Ele substitui o acoplamento direto entre a sessão, o pipeline de
// requisições e o estado de assinatura: quem precisa reagir a logout ou
// expiração de assinatura se inscreve no tópico correspondente, sem
// dependência circular entre os pacotes.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      zerolog.Logger
}

// NewBus cria um barramento vazio.
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registra um handler para um tópico.
func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

// Publish entrega o payload a todos os handlers do tópico, de forma
// síncrona. Um handler que entre em panic não derruba o publicador nem
// impede a entrega aos demais.
func (b *Bus) Publish(topic string, payload interface{}) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[topic]))
	copy(handlers, b.handlers[topic])
	b.mu.RUnlock()

	for _, h := range handlers {
		b.deliver(topic, h, payload)
	}
}

func (b *Bus) deliver(topic string, h Handler, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Str("topic", topic).Interface("panic", r).Msg("handler de evento em panic")
		}
	}()
	h(payload)
}
