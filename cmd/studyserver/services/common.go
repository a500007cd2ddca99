package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/EagleChen/mapmutex"
	cache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nickhuo/read-or-switch-sub000/pkg/datamodel"
)

// ErrNotFound is returned when a lookup matches no row. Handlers map it to
// HTTP 404; the catalog treats it as "no condition stored" and falls back
// to the unfiltered set.
var ErrNotFound = errors.New("not found")

// Conditions are immutable once assigned, so cached entries never go stale.
// The cache still carries a janitor interval to keep memory bounded across
// long deployments.
var conditionCache = cache.New(24*time.Hour, 1*time.Hour)

// Per-participant lock in front of the cache-miss path, so concurrent
// first contacts collapse into one assignment round trip.
var conditionMutex = mapmutex.NewCustomizedMapMutex(800, 100000000, 10, 1.1, 0.2)

var (
	conditionsAssigned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "study_conditions_assigned_total",
			Help: "Number of condition assignment upserts executed",
		})
	responsesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "study_responses_recorded_total",
			Help: "Number of participant responses persisted, by study part",
		}, []string{"part"})
)

func conditionCacheKey(participantID int64) string {
	return strconv.FormatInt(participantID, 10)
}

func cacheConditions(conditions datamodel.Conditions) {
	conditionCache.SetDefault(conditionCacheKey(conditions.ParticipantID), conditions)
}

func cachedConditions(participantID int64) (datamodel.Conditions, bool) {
	value, ok := conditionCache.Get(conditionCacheKey(participantID))
	if !ok {
		return datamodel.Conditions{}, false
	}
	conditions, ok := value.(datamodel.Conditions)
	return conditions, ok
}

// FlushConditionCache drops all cached condition assignments. Test helper.
func FlushConditionCache() {
	conditionCache.Flush()
}
