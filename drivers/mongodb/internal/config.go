package driver

import (
	"fmt"
	"strings"

	"github.com/datazip-inc/tap-mongodb/constants"
	"github.com/datazip-inc/tap-mongodb/utils"
)

type Config struct {
	// Hosts
	//
	// @jsonSchema(
	//   title="Hosts",
	//   description="List of MongoDB hosts (with port)",
	//   type="array",
	//   default=["host1:27017", "host2:27017"],
	//   order=1
	// )
	Hosts []string `json:"hosts" validate:"required,min=1"`

	// Database
	//
	// @jsonSchema(
	//   title="Database Name",
	//   description="MongoDB target database",
	//   type="string",
	//   default="database",
	//   order=2
	// )
	Database string `json:"database" validate:"required"`

	// AuthDB
	//
	// @jsonSchema(
	//   title="Auth DB",
	//   description="Authentication database",
	//   type="string",
	//   default="admin",
	//   order=3
	// )
	AuthDB string `json:"authdb"`

	// Username
	//
	// @jsonSchema(
	//   title="Username",
	//   description="MongoDB username",
	//   type="string",
	//   order=4
	// )
	Username string `json:"username"`

	// Password
	//
	// @jsonSchema(
	//   title="Password",
	//   description="MongoDB password",
	//   type="string",
	//   format="password",
	//   order=5
	// )
	Password string `json:"password"`

	// ReplicaSet
	//
	// @jsonSchema(
	//   title="Replica Set",
	//   description="MongoDB replica set name",
	//   type="string",
	//   order=6
	// )
	ReplicaSet string `json:"replica_set"`

	// ReadPreference
	//
	// @jsonSchema(
	//   title="Read Preference",
	//   description="Read preference (e.g., primary, secondaryPreferred)",
	//   type="string",
	//   order=7
	// )
	ReadPreference string `json:"read_preference"`

	// SRV
	//
	// @jsonSchema(
	//   title="Use SRV",
	//   description="Whether to use DNS SRV",
	//   type="boolean",
	//   default=false,
	//   order=8
	// )
	Srv bool `json:"srv"`

	// BatchSize
	//
	// @jsonSchema(
	//   title="Batch Size",
	//   description="Cursor batch size for find queries",
	//   type="integer",
	//   default=10000,
	//   order=9
	// )
	BatchSize int `json:"batch_size"`

	// CheckpointRecords
	//
	// @jsonSchema(
	//   title="Checkpoint Records",
	//   description="Records processed between two state checkpoints",
	//   type="integer",
	//   default=10000,
	//   order=10
	// )
	CheckpointRecords int `json:"checkpoint_records"`

	// MaxThreads
	//
	// @jsonSchema(
	//   title="Max Threads",
	//   description="Maximum concurrent collection probes during discovery",
	//   type="integer",
	//   default=5,
	//   order=11
	// )
	MaxThreads int `json:"max_threads"`
}

func (c *Config) URI() string {
	connectionPrefix := "mongodb"
	options := ""
	if c.AuthDB != "" {
		options = fmt.Sprintf("?authSource=%s", c.AuthDB)
	}
	if c.Srv {
		connectionPrefix = "mongodb+srv"
	}

	if c.ReplicaSet != "" {
		// configurations for a replica set
		if c.ReadPreference == "" {
			// set default
			c.ReadPreference = "secondaryPreferred"
		}
		separator := utils.Ternary(options == "", "?", "&").(string)
		options = fmt.Sprintf("%s%sreplicaSet=%s&readPreference=%s", options, separator, c.ReplicaSet, c.ReadPreference)
	}

	// Handle auth credentials
	auth := ""
	if c.Username != "" {
		auth = utils.Ternary(c.Password != "", c.Username+":"+c.Password+"@", c.Username+"@").(string)
	}

	// Final MongoDB URI
	return fmt.Sprintf(
		"%s://%s%s/%s",
		connectionPrefix, auth, strings.Join(c.Hosts, ","), options,
	)
}

func (c *Config) Validate() error {
	if err := utils.Validate(c); err != nil {
		return err
	}

	if c.BatchSize <= 0 {
		c.BatchSize = 10_000
	}
	if c.CheckpointRecords <= 0 {
		c.CheckpointRecords = constants.DefaultCheckpointPeriod
	}
	if c.MaxThreads <= 0 {
		c.MaxThreads = 5
	}

	return nil
}
