package careers

import (
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/jonathan/careers-portal/internal/careers/careerstest"
)

func newTestService(staffEmail string) (*Service, *careerstest.MemStore, *careerstest.RecordingSender, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	store := careerstest.NewMemStore()
	sender := &careerstest.RecordingSender{}
	svc := New(store, sender, Options{StaffEmail: staffEmail, Logger: logger})
	return svc, store, sender, hook
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }
func boolPtr(b bool) *bool { return &b }
