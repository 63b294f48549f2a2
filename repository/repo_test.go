package repository

import (
	"context"
	"testing"

	"github.com/Gthulhu/schedsim/config"
	"github.com/Gthulhu/schedsim/domain"
	"github.com/Gthulhu/schedsim/pkg/container"
	"github.com/Gthulhu/schedsim/pkg/logger"
	"github.com/Gthulhu/schedsim/pkg/util"
	"github.com/Gthulhu/schedsim/scheduler"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/suite"
)

func TestRepositoryTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("mongo integration suite skipped in short mode")
	}
	suite.Run(t, new(RepositoryTestSuite))
}

type RepositoryTestSuite struct {
	suite.Suite
	ctx      context.Context
	repo     *repo
	pool     *dockertest.Pool
	resource *dockertest.Resource
	mongoCfg config.MongoDBConfig
}

func (suite *RepositoryTestSuite) SetupSuite() {
	logger.InitLogger()
	suite.ctx = context.Background()

	pool, err := container.NewPool("")
	if err != nil {
		suite.T().Skipf("docker not available: %v", err)
	}
	suite.pool = pool

	cfg, err := config.InitSimConfig("sim_config.test.toml", config.GetAbsPath("config"))
	suite.Require().NoError(err, "load test config")

	conn, resource, err := container.RunMongoContainer(pool, "schedsim_repo_test_mongo", container.MongoContainerConnection{
		Username: cfg.MongoDB.User,
		Password: cfg.MongoDB.Password,
		Database: cfg.MongoDB.Database,
		Port:     cfg.MongoDB.Port,
	})
	suite.Require().NoError(err, "start mongo container")
	suite.resource = resource

	cfg.MongoDB.Enable = true
	cfg.MongoDB.Host = conn.Host
	cfg.MongoDB.Port = conn.Port
	cfg.MongoDB.User = conn.Username
	cfg.MongoDB.Password = conn.Password
	cfg.MongoDB.Database = conn.Database
	suite.mongoCfg = cfg.MongoDB

	repoInst, err := NewRepository(Params{MongoConfig: cfg.MongoDB})
	suite.Require().NoError(err, "init repository")

	r, ok := repoInst.(*repo)
	suite.Require().True(ok, "repository type assertion")
	suite.repo = r
}

func (suite *RepositoryTestSuite) TearDownSuite() {
	if suite.repo != nil {
		_ = suite.repo.Close(suite.ctx)
	}
	if suite.pool != nil && suite.resource != nil {
		err := suite.pool.Purge(suite.resource)
		suite.Require().NoError(err, "purge mongo container")
	}
}

func (suite *RepositoryTestSuite) SetupTest() {
	suite.Require().NotNil(suite.repo, "repository not initialized")
	err := util.MongoCleanup(suite.ctx, suite.repo.client, suite.mongoCfg.Database)
	suite.Require().NoError(err, "cleanup database")
	suite.Require().NoError(suite.repo.ensureIndexes(suite.ctx), "recreate indexes")
}

func (suite *RepositoryTestSuite) TestCreateAndQueryRun() {
	specs := []domain.ProcessSpec{
		{BurstTime: 5, Priority: 2, ArrivalTime: 0, QueueID: 0},
		{BurstTime: 3, Priority: 1, ArrivalTime: 1, QueueID: 0},
		{BurstTime: 8, Priority: 3, ArrivalTime: 2, QueueID: 0},
	}
	run := &domain.SimulationRun{
		Fingerprint: util.Fingerprint(specs),
		Simulation:  scheduler.Simulate(specs),
	}
	err := suite.repo.CreateRun(suite.ctx, run)
	suite.Require().NoError(err, "create run")
	suite.NotEmpty(run.ID, "run id should be assigned")
	suite.NotZero(run.CreatedTime, "created time should be assigned")

	opts := &domain.QueryRunOptions{IDs: []string{run.ID}}
	err = suite.repo.QueryRuns(suite.ctx, opts)
	suite.Require().NoError(err, "query runs")
	suite.Require().Len(opts.Result, 1, "expect one run")

	got := opts.Result[0]
	suite.Equal(run.Fingerprint, got.Fingerprint, "fingerprint should match")
	suite.Equal(run.QueueCount, got.QueueCount)
	suite.Require().Len(got.Results, 3)
	suite.Equal([]int{0, 4, 6}, got.Results[0].WaitingTimes)
	suite.Equal(domain.AlgorithmFCFS, got.Results[0].Algorithm)
}

func (suite *RepositoryTestSuite) TestQueryRunsByFingerprintNewestFirst() {
	for i, created := range []int64{10, 30, 20} {
		run := &domain.SimulationRun{Fingerprint: "fp", CreatedTime: created}
		if i == 1 {
			run.Fingerprint = "other"
		}
		suite.Require().NoError(suite.repo.CreateRun(suite.ctx, run))
	}

	opts := &domain.QueryRunOptions{Fingerprints: []string{"fp"}}
	suite.Require().NoError(suite.repo.QueryRuns(suite.ctx, opts))
	suite.Require().Len(opts.Result, 2)
	suite.Equal(int64(20), opts.Result[0].CreatedTime)
	suite.Equal(int64(10), opts.Result[1].CreatedTime)

	limited := &domain.QueryRunOptions{Limit: 1}
	suite.Require().NoError(suite.repo.QueryRuns(suite.ctx, limited))
	suite.Require().Len(limited.Result, 1)
	suite.Equal(int64(30), limited.Result[0].CreatedTime)
}

func (suite *RepositoryTestSuite) TestDeleteRun() {
	run := &domain.SimulationRun{Fingerprint: "fp"}
	suite.Require().NoError(suite.repo.CreateRun(suite.ctx, run))

	suite.Require().NoError(suite.repo.DeleteRun(suite.ctx, run.ID))
	err := suite.repo.DeleteRun(suite.ctx, run.ID)
	suite.ErrorIs(err, domain.ErrNotFound)
}
