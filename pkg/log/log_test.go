package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := logrus.StandardLogger().Out
	SetupTestLogger()
	logrus.SetOutput(&buf)
	t.Cleanup(func() { logrus.SetOutput(original) })
	return &buf
}

func TestWithFields_OmiteCamposVerbososEmDesenvolvimento(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	buf := captureOutput(t)

	L.WithFields(Fields{"rows": 3, "user_agent": "curl"}).Info("teste")

	assert.Contains(t, buf.String(), "rows=3")
	assert.NotContains(t, buf.String(), "user_agent")
}

func TestWithFields_MantemTudoEmProducao(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	buf := captureOutput(t)

	L.WithFields(Fields{"rows": 3, "user_agent": "curl"}).Info("teste")

	assert.Contains(t, buf.String(), "user_agent=curl")
}

func TestForContext_CorrelationID(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	buf := captureOutput(t)

	ctx, id := WithCorrelationID(context.Background())
	ForContext(ctx).Info("teste")

	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Contains(t, buf.String(), "correlation_id="+id)
	assert.Equal(t, "", GetCorrelationID(context.Background()))
}

func TestConfigure_NivelInvalido(t *testing.T) {
	err := Configure("barulhento")

	assert.Error(t, err)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())

	assert.NoError(t, Configure("debug"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}
