// Package redisstore implements core.Store over a redis.Cmdable, the
// interface shared by *redis.Client, *redis.ClusterClient, and *redis.Ring.
// It is the only package in this module that issues redis commands; the
// root package imports the client only for the redis.Cmdable it accepts,
// and everything from internal/core up talks to the store through
// core.Store.
package redisstore
