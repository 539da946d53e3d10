package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alovak/payment-details/internal/gateway"
	"github.com/alovak/payment-details/paymentdetails/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestClient_SendsExpectedRequests(t *testing.T) {
	type seen struct {
		method, path, reqID string
		body                map[string]any
	}
	var got []seen

	r := chi.NewRouter()
	record := func(req *http.Request) {
		s := seen{method: req.Method, path: req.URL.Path, reqID: req.Header.Get("X-Request-ID")}
		if req.Body != nil {
			_ = json.NewDecoder(req.Body).Decode(&s.body)
		}
		got = append(got, s)
	}
	r.Get("/api/PaymentDetails", func(w http.ResponseWriter, req *http.Request) {
		record(req)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"paymentDetailId":1,"cardOwnerName":"A","cardNumber":"4111111111111111","expirationDate":"12/29","securityCode":"123"}]`))
	})
	r.Post("/api/PaymentDetails", func(w http.ResponseWriter, req *http.Request) {
		record(req)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"paymentDetailId":2,"cardOwnerName":"B","cardNumber":"1","expirationDate":"01/30","securityCode":"9"}`))
	})
	r.Put("/api/PaymentDetails/{id}", func(w http.ResponseWriter, req *http.Request) {
		record(req)
		w.WriteHeader(http.StatusNoContent)
	})
	r.Delete("/api/PaymentDetails/{id}", func(w http.ResponseWriter, req *http.Request) {
		record(req)
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	c := gateway.NewWithHTTPClient(srv.URL+"/", srv.Client())
	ctx := context.Background()

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.PaymentDetail{{ID: 1, CardOwnerName: "A", CardNumber: "4111111111111111", ExpirationDate: "12/29", SecurityCode: "123"}}, list)

	created, err := c.Create(ctx, models.PaymentDetailInput{CardOwnerName: "B", CardNumber: "1", ExpirationDate: "01/30", SecurityCode: "9"})
	require.NoError(t, err)
	require.Equal(t, int64(2), created.ID)

	require.NoError(t, c.Update(ctx, 2, models.PaymentDetail{ID: 2, CardOwnerName: "C", CardNumber: "1", ExpirationDate: "01/30", SecurityCode: "9"}))
	require.NoError(t, c.Delete(ctx, 2))

	require.Len(t, got, 4)
	require.Equal(t, "/api/PaymentDetails", got[1].path)
	require.NotContains(t, got[1].body, "paymentDetailId")
	require.Equal(t, http.MethodPut, got[2].method)
	require.Equal(t, "/api/PaymentDetails/2", got[2].path)
	require.Equal(t, float64(2), got[2].body["paymentDetailId"])
	require.Equal(t, "C", got[2].body["cardOwnerName"])
	require.Equal(t, http.MethodDelete, got[3].method)
	for _, s := range got {
		require.NotEmpty(t, s.reqID)
	}
}

func TestClient_EmptyListIsNotNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer srv.Close()

	list, err := gateway.NewWithHTTPClient(srv.URL, srv.Client()).List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	err := gateway.NewWithHTTPClient(srv.URL, srv.Client()).Delete(context.Background(), 9)

	var statusErr *gateway.StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	require.Equal(t, http.MethodDelete, statusErr.Method)
	require.Contains(t, statusErr.Body, "not found")
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	_, err := gateway.New(url, gateway.Options{}).List(context.Background())
	require.Error(t, err)
	var statusErr *gateway.StatusError
	require.False(t, errors.As(err, &statusErr))
}

func TestClient_InsecureSkipVerify(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := gateway.New(srv.URL, gateway.Options{}).List(context.Background())
	require.Error(t, err, "self-signed certificate must be rejected by default")

	list, err := gateway.New(srv.URL, gateway.Options{InsecureSkipVerify: true}).List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}
