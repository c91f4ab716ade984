// pkg/schema/events.go
package schema

type PacketType string

const (
	PacketHello     PacketType = "HELLO"
	PacketStroke    PacketType = "STROKE"
	PacketHeartbeat PacketType = "HEARTBEAT"
	PacketAck       PacketType = "ACK"
)

const (
	FoamCodeOpenCell   = "oc"
	FoamCodeClosedCell = "cc"
)

// RigPacket is one JSON frame relayed from a spray-rig stroke counter.
// Counter fields are cumulative since rig power-on or its last RESET, and
// field names follow the device firmware (including the camelCase jobId).
type RigPacket struct {
	Type       PacketType `json:"type"`
	Foam       string     `json:"foam,omitempty"`
	OpenCell   int64      `json:"oc"`
	ClosedCell int64      `json:"cc"`
	JobID      string     `json:"jobId,omitempty"`
	Version    string     `json:"version,omitempty"`
	Device     string     `json:"device,omitempty"`
	Message    string     `json:"message,omitempty"`
}

type JobLifecycleEvent struct {
	JobID        string `json:"job_id"`
	CustomerName string `json:"customer_name"`
	FromStatus   string `json:"from_status"`
	ToStatus     string `json:"to_status"`
	Action       string `json:"action"`
	HappenedAt   int64  `json:"happened_at"`
}

type ScheduleOverdueEvent struct {
	JobID         string `json:"job_id"`
	CustomerName  string `json:"customer_name"`
	ScheduledDate string `json:"scheduled_date"`
	DaysOverdue   int    `json:"days_overdue"`
	HappenedAt    int64  `json:"happened_at"`
}
