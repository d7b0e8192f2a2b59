package infrastructure

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
)

const (
	httpMethodKey     = "http.method"
	httpPathKey       = "http.path"
	httpStatusCodeKey = "http.status_code"
	statusKey         = "status"
	targetKey         = "probe.target"
	probeKindKey      = "probe.kind"
	actionKey         = "action"
)

func HTTPMethodAttr(method string) attribute.KeyValue {
	return attribute.String(httpMethodKey, method)
}

func HTTPPathAttr(path string) attribute.KeyValue {
	return attribute.String(httpPathKey, path)
}

func HTTPStatusCodeAttr(code int) attribute.KeyValue {
	return attribute.String(httpStatusCodeKey, fmt.Sprintf("%d", code))
}

func StatusAttr(status string) attribute.KeyValue {
	return attribute.String(statusKey, status)
}

func TargetAttr(target string) attribute.KeyValue {
	return attribute.String(targetKey, target)
}

func ProbeKindAttr(kind string) attribute.KeyValue {
	return attribute.String(probeKindKey, kind)
}

func ActionAttr(action string) attribute.KeyValue {
	return attribute.String(actionKey, action)
}
