// File: utils/constants.go
package utils

// Keys under which the agent persists state in the key-value store.
const (
	StoreKeyUserID   = "userId"
	StoreKeySchedule = "schedule"
	StoreKeyTasks    = "tasks"
	StoreKeySession  = "session"
	StoreKeyFCMToken = "fcmToken"
)

// ReminderHandlePrefix is the prefix for reminder handle bookkeeping keys.
const ReminderHandlePrefix = "reminderHandles:"
