package logger

// Component-specific logger functions

// Web returns a logger for HTTP handler operations
func Web() Logger {
	return WithField("component", "web")
}

// Store returns a logger for database operations
func Store() Logger {
	return WithField("component", "store")
}

// Auth returns a logger for authentication operations
func Auth() Logger {
	return WithField("component", "auth")
}

// Board returns a logger for board manager operations
func Board() Logger {
	return WithField("component", "board")
}

// Task returns a logger for task manager operations
func Task() Logger {
	return WithField("component", "task")
}

// Migration returns a logger for migration operations
func Migration() Logger {
	return WithField("component", "migration")
}

// CLI returns a logger for CLI operations
func CLI() Logger {
	return WithField("component", "cli")
}
