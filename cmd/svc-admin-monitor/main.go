package main

import (
	"github.com/architeacher/svc-admin-monitor/internal/runtime"
)

func main() {
	runtime.New().Run()
}
