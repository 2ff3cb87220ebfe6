package ledger

// contractABI describes the social contract whose events this service mirrors.
const contractABI = `[
  {"type":"function","name":"createProfile","stateMutability":"nonpayable",
   "inputs":[{"name":"_username","type":"string"},{"name":"_profileHash","type":"string"}],"outputs":[]},
  {"type":"function","name":"updateProfile","stateMutability":"nonpayable",
   "inputs":[{"name":"_username","type":"string"},{"name":"_profileHash","type":"string"}],"outputs":[]},
  {"type":"function","name":"createPost","stateMutability":"nonpayable",
   "inputs":[{"name":"_contentHash","type":"string"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"likePost","stateMutability":"nonpayable",
   "inputs":[{"name":"_postId","type":"uint256"},{"name":"encryptedLike","type":"bytes"},{"name":"inputProof","type":"bytes"}],"outputs":[]},
  {"type":"function","name":"commentOnPost","stateMutability":"nonpayable",
   "inputs":[{"name":"_postId","type":"uint256"},{"name":"_commentHash","type":"string"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"sharePost","stateMutability":"nonpayable",
   "inputs":[{"name":"_originalPostId","type":"uint256"},{"name":"_additionalContent","type":"string"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"tipUser","stateMutability":"payable",
   "inputs":[{"name":"_to","type":"address"},{"name":"encryptedAmount","type":"bytes"},{"name":"inputProof","type":"bytes"}],"outputs":[]},
  {"type":"function","name":"followUser","stateMutability":"nonpayable",
   "inputs":[{"name":"_userToFollow","type":"address"},{"name":"encryptedFollow","type":"bytes"},{"name":"inputProof","type":"bytes"}],"outputs":[]},
  {"type":"function","name":"getPost","stateMutability":"view",
   "inputs":[{"name":"_postId","type":"uint256"}],
   "outputs":[{"name":"id","type":"uint256"},{"name":"author","type":"address"},{"name":"contentHash","type":"string"},{"name":"timestamp","type":"uint256"}]},
  {"type":"function","name":"getUserPosts","stateMutability":"view",
   "inputs":[{"name":"_user","type":"address"}],"outputs":[{"name":"","type":"uint256[]"}]},
  {"type":"function","name":"getProfile","stateMutability":"view",
   "inputs":[{"name":"_user","type":"address"}],
   "outputs":[{"name":"userAddress","type":"address"},{"name":"username","type":"string"},{"name":"profileHash","type":"string"}]},
  {"type":"function","name":"postCounter","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"event","name":"PostCreated","anonymous":false,
   "inputs":[{"name":"postId","type":"uint256","indexed":true},{"name":"author","type":"address","indexed":true},{"name":"contentHash","type":"string","indexed":false},{"name":"timestamp","type":"uint256","indexed":false}]},
  {"type":"event","name":"PostLiked","anonymous":false,
   "inputs":[{"name":"postId","type":"uint256","indexed":true},{"name":"liker","type":"address","indexed":true}]},
  {"type":"event","name":"PostCommented","anonymous":false,
   "inputs":[{"name":"postId","type":"uint256","indexed":true},{"name":"commentId","type":"uint256","indexed":false},{"name":"commenter","type":"address","indexed":true}]},
  {"type":"event","name":"TipSent","anonymous":false,
   "inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"timestamp","type":"uint256","indexed":false}]},
  {"type":"event","name":"UserFollowed","anonymous":false,
   "inputs":[{"name":"follower","type":"address","indexed":true},{"name":"following","type":"address","indexed":true}]}
]`
