package logger

type Logger interface {
	Info(mes string)
	Infof(str string, arg ...any)
	Error(mes string)
	Errorf(str string, arg ...any)
	Warn(mes string)
	Warnf(str string, arg ...any)
	Debug(mes string)
	Debugf(str string, arg ...any)
}
