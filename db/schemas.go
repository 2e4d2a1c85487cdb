package db

var schema = `
CREATE TABLE IF NOT EXISTS trip_favorites (
	trip_id UUID PRIMARY KEY,
	user_id VARCHAR(255) NOT NULL,
	payload JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bookings (
	booking_id UUID PRIMARY KEY,
	trip_id UUID NOT NULL,
	user_id VARCHAR(255) NOT NULL,
	confirmation_id VARCHAR(255) NOT NULL DEFAULT '',
	idempotency_key VARCHAR(255) NOT NULL,
	CONSTRAINT bookings_idempotency_key_unique UNIQUE (idempotency_key)
);

CREATE TABLE IF NOT EXISTS read_model_trips (
	trip_id UUID PRIMARY KEY,
	payload JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
	event_id UUID PRIMARY KEY,
	published_at TIMESTAMP NOT NULL,
	event_name VARCHAR(255) NOT NULL,
	event_payload JSONB NOT NULL
);
`
