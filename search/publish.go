package search

import (
	"context"

	algolia "github.com/algolia/algoliasearch-client-go/v3/algolia/search"
	"github.com/sirupsen/logrus"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/errors"
)

// ObjectIndex is the subset of the algolia index used for publishing.
type ObjectIndex interface {
	ClearObjects(opts ...interface{}) (algolia.UpdateTaskRes, error)
	SaveObjects(objects interface{}, opts ...interface{}) (algolia.GroupBatchRes, error)
}

type object struct {
	*Entry
	ObjectID string `json:"objectID"`
}

// Publisher replaces the content of a remote search index.
type Publisher struct {
	index ObjectIndex
	log   *logrus.Entry
}

func NewPublisher(index ObjectIndex, log *logrus.Entry) *Publisher {
	return &Publisher{index: index, log: log}
}

func NewAlgoliaPublisher(conf *config.Search, log *logrus.Entry) *Publisher {
	client := algolia.NewClient(conf.AlgoliaAppID, conf.AlgoliaAPIKey)
	return NewPublisher(client.InitIndex(conf.AlgoliaIndex), log.WithField("algolia_index", conf.AlgoliaIndex))
}

// Publish clears the remote index and uploads all entries.
func (p *Publisher) Publish(ctx context.Context, index *Index) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := p.index.ClearObjects(); err != nil {
		return errors.Search.Message("clear remote index").With(err)
	}

	objects := make([]object, 0, index.Len())
	for _, e := range index.Entries() {
		objects = append(objects, object{Entry: e, ObjectID: e.ID})
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := p.index.SaveObjects(objects); err != nil {
		return errors.Search.Message("save remote objects").With(err)
	}

	p.log.WithContext(ctx).Infof("published %d search entries", len(objects))
	return nil
}
