// Package services orchestrates a load: schema inference, connection,
// CREATE TABLE and the transactional insert of every record.
package services
