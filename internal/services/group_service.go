package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"splitledger_app_echo/internal/models"
)

// GroupService handles groups and their membership
type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

// CreateGroup creates a new group with the given members. All member IDs
// must reference existing users.
func (s *GroupService) CreateGroup(ctx context.Context, name, currency string, userIDs []uint) (*models.Group, error) {
	users, err := findUsers(ctx, s.db, userIDs)
	if err != nil {
		return nil, err
	}

	if currency == "" {
		currency = "USD"
	}
	group := &models.Group{
		Name:     name,
		Currency: currency,
		Members:  users,
	}
	if err := s.db.WithContext(ctx).Create(group).Error; err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

// GetGroupByID finds a group with its members.
func (s *GroupService) GetGroupByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	err := s.db.WithContext(ctx).Preload("Members").First(&group, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group: %w", err)
	}
	return &group, nil
}

// GetGroupsForUser returns all groups the user belongs to.
func (s *GroupService) GetGroupsForUser(ctx context.Context, userID uint) ([]models.Group, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Groups").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user groups: %w", err)
	}
	return user.Groups, nil
}

// AddUsersToGroup appends users to an existing group's members.
func (s *GroupService) AddUsersToGroup(ctx context.Context, groupID uint, userIDs []uint) (*models.Group, error) {
	group, err := s.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	users, err := findUsers(ctx, s.db, userIDs)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(group).Association("Members").Append(users); err != nil {
		return nil, fmt.Errorf("failed to add users to group: %w", err)
	}
	return s.GetGroupByID(ctx, groupID)
}

// GetExpensesForGroup returns all expenses recorded in the group, with
// payer and split details.
func (s *GroupService) GetExpensesForGroup(ctx context.Context, groupID uint) ([]models.GroupExpense, error) {
	if _, err := s.GetGroupByID(ctx, groupID); err != nil {
		return nil, err
	}

	var expenses []models.GroupExpense
	err := s.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Preload("Payer").
		Preload("Splits").
		Preload("Splits.User").
		Order("id").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group expenses: %w", err)
	}
	return expenses, nil
}

// RecordSettlement stores a payment between two group members.
func (s *GroupService) RecordSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.GroupID != 0 {
		group, err := s.GetGroupByID(ctx, settlement.GroupID)
		if err != nil {
			return err
		}
		if !isMember(group, settlement.FromUserID) || !isMember(group, settlement.ToUserID) {
			return ErrNotGroupMember
		}
	} else {
		if _, err := findUsers(ctx, s.db, []uint{settlement.FromUserID, settlement.ToUserID}); err != nil {
			return err
		}
	}

	if err := s.db.WithContext(ctx).Create(settlement).Error; err != nil {
		return fmt.Errorf("failed to record settlement: %w", err)
	}
	return nil
}

func isMember(group *models.Group, userID uint) bool {
	for _, m := range group.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
