package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/groomingco/edge-voice-service/pkg/logger"
	"github.com/groomingco/edge-voice-service/pkg/redis"
	"go.uber.org/zap"
)

const (
	callKeyPrefix = "edge:voice:call"

	// Registry entries expire on their own well after any real call has
	// ended, so a crashed instance cannot leave ghosts behind.
	callRegistryTTL = 1 * time.Hour
)

// CallInfo is the registry record for one live call.
type CallInfo struct {
	CallSID    string    `json:"callSid"`
	Step       string    `json:"step"`
	InstanceID string    `json:"instanceId"`
	StartedAt  time.Time `json:"startedAt"`
}

// Monitor mirrors live calls into Redis for operational visibility across
// instances. It is strictly best-effort: the authoritative call state is
// the in-process Store, and every method is a no-op when Redis is not
// configured.
type Monitor struct {
	redisSvc   redis.ServiceInterface
	instanceID string
}

// NewMonitor creates a monitor. redisSvc may be nil.
func NewMonitor(redisSvc redis.ServiceInterface, instanceID string) *Monitor {
	return &Monitor{redisSvc: redisSvc, instanceID: instanceID}
}

// Register records a call in the registry.
func (m *Monitor) Register(ctx context.Context, s *Session) {
	if m == nil || m.redisSvc == nil {
		return
	}
	info := CallInfo{
		CallSID:    s.CallSID,
		Step:       s.Step.String(),
		InstanceID: m.instanceID,
		StartedAt:  s.CreatedAt,
	}
	data, _ := json.Marshal(info)
	key := fmt.Sprintf("%s:%s", callKeyPrefix, s.CallSID)
	if err := m.redisSvc.SetValue(ctx, key, string(data), callRegistryTTL); err != nil {
		logger.Base().Warn("failed to register call in registry",
			zap.String("call_sid", s.CallSID), zap.Error(err))
	}
}

// Unregister drops a call from the registry after teardown.
func (m *Monitor) Unregister(ctx context.Context, callSID string) {
	if m == nil || m.redisSvc == nil {
		return
	}
	key := fmt.Sprintf("%s:%s", callKeyPrefix, callSID)
	if err := m.redisSvc.DelValue(ctx, key); err != nil {
		logger.Base().Warn("failed to unregister call from registry",
			zap.String("call_sid", callSID), zap.Error(err))
	}
}

// ActiveCalls lists the registry entries across all instances.
func (m *Monitor) ActiveCalls(ctx context.Context) ([]CallInfo, error) {
	if m == nil || m.redisSvc == nil {
		return nil, nil
	}
	keys, err := m.redisSvc.Keys(ctx, callKeyPrefix+":*")
	if err != nil {
		return nil, err
	}
	infos := make([]CallInfo, 0, len(keys))
	for _, key := range keys {
		val, err := m.redisSvc.GetValue(ctx, key)
		if err != nil {
			if err == redis.ErrKeyNotExist {
				continue
			}
			return nil, err
		}
		var info CallInfo
		if err := json.Unmarshal([]byte(val), &info); err != nil {
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}
