// Package smtp содержит транспорт отправки писем подписчикам курсов.
package smtp

import "io"

// Client — открытая SMTP-сессия для отправки одного письма.
// Воркер рассылки проходит цепочку Mail → Rcpt → Data → Quit на каждого
// получателя; в тестах сессия подменяется фейком.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface устанавливает SMTP-сессии для рассылки уведомлений.
// Connect ограничен таймаутом из конфигурации, чтобы недоступный сервер
// не блокировал обработку очереди задач.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
