package metrics

import "strconv"

// IncrementCommentCreated increments comment creation counter
func (m *Metrics) IncrementCommentCreated() {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentCreatedTotal.Inc()
	})
}

// IncrementProposalCreated increments proposal creation counter
func (m *Metrics) IncrementProposalCreated() {
	m.safeExecute("IncrementProposalCreated", func() {
		m.ProposalCreatedTotal.Inc()
	})
}

// IncrementNotificationPublished records a notification publish attempt
func (m *Metrics) IncrementNotificationPublished(event string, succeeded bool) {
	m.safeExecute("IncrementNotificationPublished", func() {
		m.NotificationsPublishedTotal.WithLabelValues(event, strconv.FormatBool(succeeded)).Inc()
	})
}

// SetCommentsTotal sets total comments gauge
func (m *Metrics) SetCommentsTotal(count int64) {
	m.safeExecute("SetCommentsTotal", func() {
		m.CommentsTotal.Set(float64(count))
	})
}

// SetProposalsTotal sets total proposals gauge
func (m *Metrics) SetProposalsTotal(count int64) {
	m.safeExecute("SetProposalsTotal", func() {
		m.ProposalsTotal.Set(float64(count))
	})
}

// SetModerationsPendingTotal sets the pending moderations gauge
func (m *Metrics) SetModerationsPendingTotal(count int64) {
	m.safeExecute("SetModerationsPendingTotal", func() {
		m.ModerationsPendingTotal.Set(float64(count))
	})
}
