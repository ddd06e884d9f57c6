package postgres

const eventColumns = `
id, initiator_id, category_id, title, annotation, description,
lat, lon, event_date, published_date, created_date,
paid, participant_limit, request_moderation, state`

const insertEventSQL = `
INSERT INTO events (
  initiator_id, category_id, title, annotation, description,
  lat, lon, event_date, published_date, created_date,
  paid, participant_limit, request_moderation, state
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
RETURNING id
`

const getEventSQL = `
SELECT` + eventColumns + `
FROM events WHERE id = $1
`

const getOwnedEventSQL = `
SELECT` + eventColumns + `
FROM events WHERE id = $1 AND initiator_id = $2
`

const updateEventSQL = `
UPDATE events SET
  category_id=$2, title=$3, annotation=$4, description=$5,
  lat=$6, lon=$7, event_date=$8, published_date=$9,
  paid=$10, participant_limit=$11, request_moderation=$12, state=$13
WHERE id=$1
`

const listByInitiatorSQL = `
SELECT` + eventColumns + `
FROM events
WHERE initiator_id = $1
ORDER BY id ASC
LIMIT $2 OFFSET $3
`

const confirmedCountsSQL = `
SELECT event_id, COUNT(*)
FROM requests
WHERE status = 'CONFIRMED' AND event_id = ANY($1)
GROUP BY event_id
`
