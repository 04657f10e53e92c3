package config

type WorkerKeyStruct struct {
	PersistAttemptsQueue string
	// PersistAttemptsDead receives payloads that failed to insert after
	// retries, so no attempt is ever silently lost.
	PersistAttemptsDead string
}

var WorkerKey = &WorkerKeyStruct{
	PersistAttemptsQueue: "persist_attempts_queue",
	PersistAttemptsDead:  "persist_attempts_dead",
}
