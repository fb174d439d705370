package constants

import "time"

// Local store keys, one JSON blob per entity kind.
const (
	KeyOrders  = "printflow-orders"
	KeyProfile = "printflow-profile"
	KeyChat    = "printflow-chat"
)

// Change feed channel and topics.
const (
	ChangeChannel = "printflow_changes"
	TopicOrders   = "orders"
	TopicChat     = "chat"
)

// FirstOrderNumber is assigned when the order collection is empty.
const FirstOrderNumber = 1001

// Deadline scan
const (
	DeadlineScanDelay  = 2 * time.Second
	DeadlineWindowDays = 2
)

const MaxNotifications = 50

// HTTP
const (
	DefaultHTTPAddr  = ":8080"
	SSEKeepAlive     = 25 * time.Second
	ContextKeyOrder  = "order"
	SearchQueryParam = "q"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

const DefaultLocalPath = "printflow-data.json"

// AI assistant
const (
	DefaultOpenAIModel = "gpt-4o-mini"
	AIMaxTokens        = 300
	AITemperature      = 0.4
)
