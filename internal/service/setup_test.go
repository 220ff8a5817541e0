package service

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

func setupServices(t *testing.T) (*Services, *MockRepositories, *MockTxManager) {
	t.Helper()

	repos := NewMockRepositories()
	tx := NewMockTxManager(repos.Registry())

	log := logrus.New()
	log.SetOutput(io.Discard)

	return New(tx, log), repos, tx
}

func strPtr(s string) *string {
	return &s
}
