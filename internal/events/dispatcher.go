package events

import (
	"context"
	"sync"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Subscriber обработчик доменных событий
type Subscriber interface {
	// SubscriberName имя подписчика для логов
	SubscriberName() string
	// Handle обрабатывает событие. Ошибка логируется диспетчером,
	// но никогда не влияет на уже закоммиченную транзакцию.
	Handle(ctx context.Context, event Event) error
}

// Dispatcher рассылает события списку подписчиков.
// Доставка fire-and-forget: каждый подписчик вызывается в своей горутине
// с собственным таймаутом, независимо от контекста исходного запроса.
type Dispatcher struct {
	subscribers []Subscriber
	log         Logger
	timeout     time.Duration

	wg sync.WaitGroup
}

// NewDispatcher создает диспетчер с таймаутом доставки на подписчика
func NewDispatcher(log Logger, timeout time.Duration, subscribers ...Subscriber) *Dispatcher {
	return &Dispatcher{
		subscribers: subscribers,
		log:         log,
		timeout:     timeout,
	}
}

// Dispatch рассылает событие всем подписчикам и сразу возвращает управление
func (d *Dispatcher) Dispatch(event Event) {
	for _, sub := range d.subscribers {
		d.wg.Add(1)
		go func(sub Subscriber) {
			defer d.wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			defer cancel()

			if err := sub.Handle(ctx, event); err != nil {
				d.log.Error("events: subscriber %s failed to handle %s: %v",
					sub.SubscriberName(), event.Name(), err)
				return
			}
			d.log.Info("events: subscriber %s handled %s", sub.SubscriberName(), event.Name())
		}(sub)
	}
}

// Wait дожидается завершения всех доставок (используется при shutdown и в тестах)
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
