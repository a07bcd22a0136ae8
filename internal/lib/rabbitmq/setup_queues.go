package rabbitmq

// QueueConfig очередь и ключ маршрутизации, по которому она привязана к exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Topology exchange и привязанные к нему очереди.
type Topology struct {
	Exchange string
	Queues   []QueueConfig
}

// NotificationTopology топология доставки уведомлений во внешний вебхук.
func NotificationTopology(exchange, queue, routingKey string) Topology {
	return Topology{
		Exchange: exchange,
		Queues: []QueueConfig{
			{QueueName: queue, RoutingKey: routingKey},
		},
	}
}
