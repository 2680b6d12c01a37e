package messaging

// Subject names for the tagwatch message bus.
// Pattern: {domain}.{category}.{action}
const (
	// SubjectRegistryPush carries inbound image-push events from
	// registry pipelines.
	SubjectRegistryPush = "registry.events.push"

	// SubjectNotifyPush carries outbound push notifications; every
	// current subscriber of the subject receives each message.
	SubjectNotifyPush = "registry.notifications.push"
)

// QueueRelayWorkers is the queue group for relay consumers. Workers in
// the group share inbound events so each event is processed once.
const QueueRelayWorkers = "relay-workers"
