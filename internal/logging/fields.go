package logging

// Components that tag the loggers of marksmith's subsystems.
const (
	ComponentEngine  = "engine"
	ComponentTable   = "table"
	ComponentCommand = "command"
	ComponentPlugin  = "plugin"
	ComponentSaver   = "saver"
)

// Field keys shared by every component, so one document's activity can be
// followed across the engine, table and store logs.
const (
	FieldComponent = "component"
	FieldCommand   = "cmd"
	FieldTable     = "table"
	FieldPath      = "path"
	FieldPlugin    = "plugin"
)

// For returns l tagged with component. A nil l yields a disabled logger, so
// packages can accept an optional logger option without their own nil check.
func For(l *Logger, component string) *Logger {
	if l == nil {
		l = Nop()
	}
	return l.WithComponent(component)
}

// WithCommand tags the logger with an editing command or transaction name.
func (l *Logger) WithCommand(name string) *Logger {
	return l.WithField(FieldCommand, name)
}

// WithTable tags the logger with a table handle.
func (l *Logger) WithTable(handle string) *Logger {
	return l.WithField(FieldTable, handle)
}

// WithPath tags the logger with a document path.
func (l *Logger) WithPath(path string) *Logger {
	return l.WithField(FieldPath, path)
}
