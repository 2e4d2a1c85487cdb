package outbox

// topic is the Postgres table-backed topic the forwarder drains.
const topic = "events_to_forward"
