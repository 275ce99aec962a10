package service

import (
	"encoding/json"
	"testing"

	"izmarket/internal/domain"
	"izmarket/internal/models"
	"izmarket/internal/repository"
	"izmarket/internal/ws"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type ConversationServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	hub     *ws.Hub
	svc     *ConversationService
	alice   *models.User
	bob     *models.User
	article *models.Article
}

func (s *ConversationServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.hub = ws.NewHub()
	s.svc = NewConversationService(
		repository.NewMessageRepository(s.db),
		repository.NewUserRepository(s.db),
		repository.NewArticleRepository(s.db),
		s.hub,
	)
	s.alice = createTestUser(s.T(), s.db, "Alice", "alice@example.com", domain.RoleUser)
	s.bob = createTestUser(s.T(), s.db, "Bob", "bob@example.com", domain.RoleUser)
	s.article = createTestArticle(s.T(), s.db, s.bob.ID, "Vélo de ville", []string{"https://cdn.example.com/velo.jpg"})
}

func (s *ConversationServiceTestSuite) TestChannelNameSymmetric() {
	s.Equal("chat_3_7_12", ChannelName(7, 3, 12))
	s.Equal("chat_3_7_12", ChannelName(3, 7, 12))
	s.Equal("chat_1_2_0", ChannelName(2, 1, 0))
}

func (s *ConversationServiceTestSuite) TestSendMessagePersistsUnread() {
	m, err := s.svc.SendMessage(s.alice.ID, s.bob.ID, s.article.ID, "Bonjour, le vélo est-il disponible ?")
	s.Require().NoError(err)
	s.NotZero(m.ID)
	s.False(m.Read)

	var stored models.Message
	s.Require().NoError(s.db.First(&stored, m.ID).Error)
	s.Equal(s.alice.ID, stored.SenderID)
	s.Equal(s.article.ID, stored.ArticleID)
	s.False(stored.Read)
}

func (s *ConversationServiceTestSuite) TestSendMessageTrimsAndRejectsEmpty() {
	_, err := s.svc.SendMessage(s.alice.ID, s.bob.ID, 0, "   ")
	s.ErrorIs(err, domain.ErrValidation)

	m, err := s.svc.SendMessage(s.alice.ID, s.bob.ID, 0, "  salut  ")
	s.Require().NoError(err)
	s.Equal("salut", m.Content)
}

func (s *ConversationServiceTestSuite) TestSendMessageUnknownReceiverOrArticle() {
	_, err := s.svc.SendMessage(s.alice.ID, 9999, 0, "hello")
	s.ErrorIs(err, domain.ErrNotFound)

	_, err = s.svc.SendMessage(s.alice.ID, s.bob.ID, 9999, "hello")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *ConversationServiceTestSuite) TestSendMessageBroadcastsToChannel() {
	client := ws.NewClient(s.bob.ID)
	room := s.hub.GetOrCreateRoom(ChannelName(s.alice.ID, s.bob.ID, s.article.ID))
	room.Join(client)
	defer room.Leave(client)

	_, err := s.svc.SendMessage(s.alice.ID, s.bob.ID, s.article.ID, "Bonjour")
	s.Require().NoError(err)

	select {
	case data := <-client.Send:
		var payload map[string]interface{}
		s.Require().NoError(json.Unmarshal(data, &payload))
		s.Equal("message", payload["type"])
		s.Equal("Bonjour", payload["content"])
		s.Equal("Alice Test", payload["sender_name"])
	default:
		s.Fail("expected a broadcast on the conversation channel")
	}
}

func (s *ConversationServiceTestSuite) TestListConversationsGroupsByPeerAndArticle() {
	_, err := s.svc.SendMessage(s.alice.ID, s.bob.ID, s.article.ID, "Bonjour")
	s.Require().NoError(err)
	_, err = s.svc.SendMessage(s.bob.ID, s.alice.ID, s.article.ID, "Oui, toujours disponible")
	s.Require().NoError(err)
	_, err = s.svc.SendMessage(s.bob.ID, s.alice.ID, 0, "Question générale")
	s.Require().NoError(err)

	convs, err := s.svc.ListConversations(s.alice.ID)
	s.Require().NoError(err)
	s.Require().Len(convs, 2, "same peer with and without article are distinct conversations")

	byArticle := make(map[uint]ConversationSummary)
	for _, c := range convs {
		byArticle[c.ArticleID] = c
	}

	withArticle := byArticle[s.article.ID]
	s.Equal(s.bob.ID, withArticle.PeerID)
	s.Equal("Bob Test", withArticle.PeerName)
	s.Equal("Vélo de ville", withArticle.ArticleTitle)
	s.Equal("https://cdn.example.com/velo.jpg", withArticle.Avatar)
	s.Equal("Oui, toujours disponible", withArticle.LastMessage, "latest message wins")
	s.Equal(1, withArticle.Unread)

	general := byArticle[0]
	s.Equal("", general.ArticleTitle)
	s.Equal(domain.PlaceholderImage, general.Avatar)
	s.Equal(1, general.Unread)
}

func (s *ConversationServiceTestSuite) TestListConversationsSkipsDeletedPeer() {
	ghost := createTestUser(s.T(), s.db, "Ghost", "ghost@example.com", domain.RoleUser)
	_, err := s.svc.SendMessage(ghost.ID, s.alice.ID, 0, "je pars")
	s.Require().NoError(err)
	s.Require().NoError(s.db.Delete(&models.User{}, ghost.ID).Error)

	convs, err := s.svc.ListConversations(s.alice.ID)
	s.Require().NoError(err)
	s.Empty(convs)
}

func (s *ConversationServiceTestSuite) TestListConversationsDeletedArticleFallback() {
	_, err := s.svc.SendMessage(s.bob.ID, s.alice.ID, s.article.ID, "toujours disponible ?")
	s.Require().NoError(err)
	s.Require().NoError(s.db.Delete(&models.Article{}, s.article.ID).Error)

	convs, err := s.svc.ListConversations(s.alice.ID)
	s.Require().NoError(err)
	s.Require().Len(convs, 1, "thread survives the article")
	s.Equal(s.article.ID, convs[0].ArticleID)
	s.Equal("Article inconnu", convs[0].ArticleTitle)
	s.Equal(domain.PlaceholderImage, convs[0].Avatar)
	s.Equal(1, convs[0].Unread)
}

func (s *ConversationServiceTestSuite) TestListMessagesMarksAllFromPeerRead() {
	_, err := s.svc.SendMessage(s.bob.ID, s.alice.ID, s.article.ID, "premier")
	s.Require().NoError(err)
	_, err = s.svc.SendMessage(s.bob.ID, s.alice.ID, 0, "second")
	s.Require().NoError(err)
	_, err = s.svc.SendMessage(s.alice.ID, s.bob.ID, 0, "réponse")
	s.Require().NoError(err)

	messages, err := s.svc.ListMessages(s.alice.ID, s.bob.ID)
	s.Require().NoError(err)
	s.Require().Len(messages, 3)
	s.Equal("premier", messages[0].Content, "history is oldest first")
	for _, m := range messages {
		if m.ReceiverID == s.alice.ID {
			s.True(m.Read, "messages to the caller come back read")
		}
	}

	// Read-marking spans every article with that peer.
	count, err := s.svc.UnreadCount(s.alice.ID)
	s.Require().NoError(err)
	s.Zero(count)

	// Alice's own outgoing message stays unread for Bob.
	count, err = s.svc.UnreadCount(s.bob.ID)
	s.Require().NoError(err)
	s.EqualValues(1, count)
}

func (s *ConversationServiceTestSuite) TestListMessagesIdempotent() {
	_, err := s.svc.SendMessage(s.bob.ID, s.alice.ID, 0, "coucou")
	s.Require().NoError(err)

	_, err = s.svc.ListMessages(s.alice.ID, s.bob.ID)
	s.Require().NoError(err)
	messages, err := s.svc.ListMessages(s.alice.ID, s.bob.ID)
	s.Require().NoError(err)
	s.Require().Len(messages, 1)
	s.True(messages[0].Read)
}

func (s *ConversationServiceTestSuite) TestMarkReadAndUnreadCount() {
	_, err := s.svc.SendMessage(s.bob.ID, s.alice.ID, 0, "un")
	s.Require().NoError(err)
	_, err = s.svc.SendMessage(s.bob.ID, s.alice.ID, s.article.ID, "deux")
	s.Require().NoError(err)

	count, err := s.svc.UnreadCount(s.alice.ID)
	s.Require().NoError(err)
	s.EqualValues(2, count)

	s.Require().NoError(s.svc.MarkRead(s.alice.ID, s.bob.ID))

	count, err = s.svc.UnreadCount(s.alice.ID)
	s.Require().NoError(err)
	s.Zero(count)
}

func TestConversationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConversationServiceTestSuite))
}
