// internal/worker/rig_listener.go
package worker

import (
	"context"
	"encoding/json"
	"sync"

	"foamjobs/internal/domain/entities"
	"foamjobs/pkg/schema"

	"go.uber.org/zap"
)

// strokeRecorder is the slice of the job usecase the listener needs.
type strokeRecorder interface {
	AccumulateRigStrokes(ctx context.Context, id string, family entities.FoamFamily, strokes int64) (entities.Job, error)
}

// RigListener turns the spray rig's cumulative stroke counters into per-job
// usage increments.
//
// The firmware counters belong to the device, not to a job: selecting a new
// job on the rig does not zero them, only an explicit RESET does. A STROKE
// frame does not say which job it belongs to either; the active job is
// whatever the latest HEARTBEAT from the same device announced. Baselines are
// therefore remembered per device, and when a heartbeat switches the active
// job the baselines jump to that frame's readings so the previous job's
// accumulated count is never re-credited. A reading lower than the baseline
// means the rig was reset, so the whole reading counts as new strokes.
type RigListener struct {
	jobs   strokeRecorder
	logger *zap.Logger

	mu        sync.Mutex
	activeJob map[string]string // device -> job id
	lastOC    map[string]int64  // device -> last cumulative oc reading
	lastCC    map[string]int64  // device -> last cumulative cc reading
}

func NewRigListener(jobs strokeRecorder, logger *zap.Logger) *RigListener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RigListener{
		jobs:      jobs,
		logger:    logger,
		activeJob: make(map[string]string),
		lastOC:    make(map[string]int64),
		lastCC:    make(map[string]int64),
	}
}

// Handle is the NATS subscription callback. Malformed frames are dropped.
func (l *RigListener) Handle(ctx context.Context, data []byte) {
	var pkt schema.RigPacket
	if err := json.Unmarshal(data, &pkt); err != nil {
		l.logger.Warn("dropping unreadable rig frame", zap.Error(err))
		return
	}
	l.process(ctx, pkt)
}

func (l *RigListener) process(ctx context.Context, pkt schema.RigPacket) {
	switch pkt.Type {
	case schema.PacketHello, schema.PacketAck:
		return
	case schema.PacketHeartbeat, schema.PacketStroke:
	default:
		l.logger.Warn("dropping rig frame of unknown type", zap.String("type", string(pkt.Type)))
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if pkt.Type == schema.PacketHeartbeat && pkt.JobID != "" {
		prev := l.activeJob[pkt.Device]
		l.activeJob[pkt.Device] = pkt.JobID
		if prev != "" && prev != pkt.JobID {
			// The rig switched jobs without a reset, so its counters keep
			// the old job's total. Strokes between the last frame and this
			// announcement cannot be attributed to either job; the baselines
			// jump to the current readings and counting resumes from here.
			l.lastOC[pkt.Device] = pkt.OpenCell
			l.lastCC[pkt.Device] = pkt.ClosedCell
			return
		}
	}

	jobID := l.activeJob[pkt.Device]
	if jobID == "" {
		l.logger.Warn("dropping rig frame with no active job",
			zap.String("type", string(pkt.Type)), zap.String("device", pkt.Device))
		return
	}

	l.apply(ctx, pkt.Device, jobID, entities.FoamFamilyOpenCell, pkt.OpenCell, l.lastOC)
	l.apply(ctx, pkt.Device, jobID, entities.FoamFamilyClosedCell, pkt.ClosedCell, l.lastCC)
}

// apply advances one family's device baseline. The baseline moves only after
// a successful write, so a failed write is retried by the next frame.
func (l *RigListener) apply(ctx context.Context, device, jobID string, family entities.FoamFamily, reported int64, last map[string]int64) {
	prev := last[device]
	delta := reported - prev
	if reported < prev {
		// Counter went backwards: the rig was reset mid-job.
		delta = reported
	}
	if delta == 0 {
		return
	}
	if _, err := l.jobs.AccumulateRigStrokes(ctx, jobID, family, delta); err != nil {
		l.logger.Warn("stroke accumulation failed",
			zap.String("job_id", jobID), zap.String("family", string(family)),
			zap.Int64("delta", delta), zap.Error(err))
		return
	}
	last[device] = reported
}
