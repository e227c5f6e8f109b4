package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/docthru/backend/internal/common"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	common.PromCounters[common.ExpiredChallengeTotal].WithLabelValues().Add(2)

	w := httptest.NewRecorder()
	NewHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), common.ExpiredChallengeTotal)
	require.Contains(t, w.Body.String(), "go_goroutines")
}
